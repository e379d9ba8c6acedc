package pathconv

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

// fakeWSL writes a shell script standing in for wsl.exe and returns a
// converter that runs it.
func fakeWSL(t *testing.T, script string) *Converter {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake front-end is a shell script")
	}
	path := filepath.Join(t.TempDir(), "wsl.exe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return &Converter{Executable: path}
}

// fakeWSLOutput returns a converter whose front-end writes data to stdout
// (or stderr) verbatim and exits with code.
func fakeWSLOutput(t *testing.T, data []byte, toStderr bool, code int) *Converter {
	t.Helper()
	dataPath := filepath.Join(t.TempDir(), "output.bin")
	require.NoError(t, os.WriteFile(dataPath, data, 0o600))
	redirect := ""
	if toStderr {
		redirect = " >&2"
	}
	return fakeWSL(t, fmt.Sprintf("cat '%s'%s\nexit %d", dataPath, redirect, code))
}

const echoArgs = `for a; do printf '%s|' "$a"; done; printf '\n'`

func TestArgs(t *testing.T) {
	c := &Converter{}

	tests := []struct {
		name     string
		path     string
		distro   string
		conv     Conversion
		absolute bool
		want     []string
	}{
		{
			name: "wsl to windows",
			path: "/mnt/c", conv: WSLToWindows,
			want: []string{"-e", "wslpath", "-w", "/mnt/c"},
		},
		{
			name: "linux style with absolute",
			path: "/mnt/c", conv: WSLToWindowsLinuxStyle, absolute: true,
			want: []string{"-e", "wslpath", "-m", "-a", "/mnt/c"},
		},
		{
			name: "distro comes first",
			path: "C:/", distro: "Ubuntu-22.04", conv: WindowsToWSL, absolute: true,
			want: []string{"-d", "Ubuntu-22.04", "-e", "wslpath", "-u", "-a", "C:/"},
		},
		{
			name: "backslashes escaped",
			path: `C:\Users\me`, conv: WindowsToWSL,
			want: []string{"-e", "wslpath", "-u", `C:\\Users\\me`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.args(tt.path, tt.distro, tt.conv, tt.absolute))
		})
	}
}

func TestArgsCustomTool(t *testing.T) {
	c := &Converter{Tool: "/usr/bin/wslpath"}
	assert.Equal(t,
		[]string{"-e", "/usr/bin/wslpath", "-w", "/home"},
		c.args("/home", "", WSLToWindows, false))
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/mnt/c/Users", "/mnt/c/Users"},
		{`C:\`, `C:\\`},
		{`\\server\share\dir`, `\\\\server\\share\\dir`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := escapePath(tt.in); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConversionFlagAndString(t *testing.T) {
	tests := []struct {
		conv Conversion
		flag string
		name string
	}{
		{WindowsToWSL, "-u", "wsl"},
		{WSLToWindows, "-w", "windows"},
		{WSLToWindowsLinuxStyle, "-m", "mixed"},
		{Conversion(42), "", "Conversion(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.flag, tt.conv.Flag())
		assert.Equal(t, tt.name, tt.conv.String())
	}
}

func TestParseConversion(t *testing.T) {
	tests := []struct {
		in   string
		want Conversion
	}{
		{"u", WindowsToWSL},
		{"-u", WindowsToWSL},
		{"WSL", WindowsToWSL},
		{"w", WSLToWindows},
		{" windows ", WSLToWindows},
		{"-m", WSLToWindowsLinuxStyle},
		{"mixed", WSLToWindowsLinuxStyle},
	}
	for _, tt := range tests {
		got, err := ParseConversion(tt.in)
		require.NoError(t, err, "ParseConversion(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseConversion(%q)", tt.in)
	}

	_, err := ParseConversion("x")
	require.ErrorIs(t, err, ErrUnknownConversion)
}

func TestConvertPassesArgumentsInOrder(t *testing.T) {
	c := fakeWSL(t, echoArgs)

	got, err := c.Convert(`C:\Program Files`, "Debian", WindowsToWSL, true)
	require.NoError(t, err)
	assert.Equal(t, `-d|Debian|-e|wslpath|-u|-a|C:\\Program Files|`, got)
}

func TestConvertTrimsOutput(t *testing.T) {
	c := fakeWSL(t, `printf '  /mnt/c/\r\n\n'`)

	got, err := c.Convert("C:/", "", WindowsToWSL, false)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/c/", got)
}

func TestConvertStripsUTF8BOM(t *testing.T) {
	c := fakeWSLOutput(t, []byte("\xEF\xBB\xBFC:\\\n"), false, 0)

	got, err := c.Convert("/mnt/c", "", WSLToWindows, false)
	require.NoError(t, err)
	assert.Equal(t, `C:\`, got)
}

func TestConvertNonZeroExit(t *testing.T) {
	c := fakeWSL(t, "echo 'wslpath: /nope: Invalid argument' >&2\nexit 3")

	got, err := c.Convert("/nope", "", WSLToWindows, false)
	require.Error(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrExit)
	assert.NotErrorIs(t, err, ErrLaunch)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "wslpath: /nope: Invalid argument", exitErr.Message)
	assert.Equal(t, "wslpath exited with code 3: wslpath: /nope: Invalid argument", err.Error())
}

func TestConvertKilledBySignal(t *testing.T) {
	c := fakeWSL(t, "kill -9 $$")

	_, err := c.Convert("/mnt/c", "", WSLToWindows, false)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, -1, exitErr.Code)
}

func TestConvertUTF16Diagnostic(t *testing.T) {
	msg := utf16Bytes("There is no distribution with the supplied name.\r\n")
	c := fakeWSLOutput(t, msg, false, 1)

	_, err := c.Convert("/mnt/c", "Nope", WSLToWindows, false)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Equal(t, "There is no distribution with the supplied name.", exitErr.Message)
}

func TestConvertInvalidUTF8(t *testing.T) {
	c := fakeWSLOutput(t, []byte{0xff, 0xfe, 'C', ':', '\n'}, false, 0)

	got, err := c.Convert("/mnt/c", "", WSLToWindows, false)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, encoding.ErrInvalidUTF8)

	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestConvertMissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "wsl.exe")
	c := &Converter{Executable: missing}

	got, err := c.Convert("/mnt/c", "", WSLToWindows, false)
	assert.Empty(t, got)
	require.ErrorIs(t, err, ErrLaunch)

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, missing, launchErr.Executable)
}

func TestConvertExecutableNotOnPath(t *testing.T) {
	c := &Converter{Executable: "wslpath2-no-such-front-end.exe"}

	_, err := c.Convert("/mnt/c", "", WSLToWindows, false)
	require.ErrorIs(t, err, ErrLaunch)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestConvertUnknownConversion(t *testing.T) {
	c := &Converter{Executable: "wslpath2-never-started.exe"}

	_, err := c.Convert("/mnt/c", "", Conversion(9), false)
	require.ErrorIs(t, err, ErrUnknownConversion)
	assert.False(t, errors.Is(err, ErrLaunch), "no process should be started")
}

func TestConvertConcurrent(t *testing.T) {
	c := fakeWSL(t, `for a; do last=$a; done; printf '%s\n' "$last"`)

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Convert(fmt.Sprintf("/mnt/c/dir%d", i), "", WSLToWindows, false)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("/mnt/c/dir%d", i), results[i])
	}
}

func utf16Bytes(s string) []byte {
	b, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return b
}
