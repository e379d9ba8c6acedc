// Package pathconv translates paths between WSL and Windows formats by
// running wslpath through wsl.exe.
//
// Every call starts one wsl.exe child process and waits for it:
//
//	wsl.exe [-d <distro>] -e wslpath <-u|-w|-m> [-a] <path>
//
// The conversion rules themselves belong to wslpath; this package only builds
// the command line and interprets the result.
package pathconv

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultExecutable is the WSL front-end used when Converter.Executable is empty.
	DefaultExecutable = "wsl.exe"
	// DefaultTool is the program wsl.exe runs when Converter.Tool is empty.
	DefaultTool = "wslpath"
)

// Conversion selects the direction and style of a translation.
type Conversion int

const (
	// WindowsToWSL converts a Windows path to a WSL path (wslpath -u).
	WindowsToWSL Conversion = iota
	// WSLToWindows converts a WSL path to a Windows path (wslpath -w).
	WSLToWindows
	// WSLToWindowsLinuxStyle converts a WSL path to a Windows path with
	// forward slashes (wslpath -m).
	WSLToWindowsLinuxStyle
)

// ErrUnknownConversion is returned by ParseConversion for unrecognised input.
var ErrUnknownConversion = errors.New("unknown conversion")

// Flag returns the wslpath flag for the conversion.
func (c Conversion) Flag() string {
	switch c {
	case WindowsToWSL:
		return "-u"
	case WSLToWindows:
		return "-w"
	case WSLToWindowsLinuxStyle:
		return "-m"
	default:
		return ""
	}
}

func (c Conversion) String() string {
	switch c {
	case WindowsToWSL:
		return "wsl"
	case WSLToWindows:
		return "windows"
	case WSLToWindowsLinuxStyle:
		return "mixed"
	default:
		return fmt.Sprintf("Conversion(%d)", int(c))
	}
}

// ParseConversion accepts a wslpath flag with or without the dash
// ("u", "-w") or a conversion name ("wsl", "windows", "mixed").
func ParseConversion(s string) (Conversion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "-u", "wsl", "linux", "unix":
		return WindowsToWSL, nil
	case "w", "-w", "windows", "win":
		return WSLToWindows, nil
	case "m", "-m", "mixed":
		return WSLToWindowsLinuxStyle, nil
	}
	return 0, fmt.Errorf("%w %q (want one of u, w, m)", ErrUnknownConversion, s)
}

// Converter runs wslpath through a WSL front-end executable.
// The zero value uses wsl.exe and wslpath. A Converter is safe for
// concurrent use; each call runs its own child process.
type Converter struct {
	// Executable is the WSL front-end, e.g. "wsl.exe" or a full path to it.
	Executable string
	// Tool is the program passed to the front-end with -e.
	Tool string
}

var defaultConverter = &Converter{}

// Convert translates path using the default converter.
// An empty distro selects the default WSL distribution.
func Convert(path, distro string, conv Conversion, forceAbsolute bool) (string, error) {
	return defaultConverter.Convert(path, distro, conv, forceAbsolute)
}

// ToWSL converts a Windows path to an absolute WSL path.
func ToWSL(path, distro string) (string, error) {
	return Convert(path, distro, WindowsToWSL, true)
}

// ToWindows converts a WSL path to an absolute Windows path.
func ToWindows(path, distro string) (string, error) {
	return Convert(path, distro, WSLToWindows, true)
}

// ToWindowsForwardSlashes converts a WSL path to an absolute Windows path
// that uses forward slashes, e.g. C:/Users.
func ToWindowsForwardSlashes(path, distro string) (string, error) {
	return Convert(path, distro, WSLToWindowsLinuxStyle, true)
}

// Convert translates path with wslpath and returns the trimmed result.
//
// Failures are one of *LaunchError, *ExitError or *DecodeError.
func (c *Converter) Convert(path, distro string, conv Conversion, forceAbsolute bool) (string, error) {
	if conv.Flag() == "" {
		return "", fmt.Errorf("%w: %v", ErrUnknownConversion, conv)
	}
	return c.run(c.args(path, distro, conv, forceAbsolute))
}

func (c *Converter) executable() string {
	if c.Executable == "" {
		return DefaultExecutable
	}
	return c.Executable
}

func (c *Converter) tool() string {
	if c.Tool == "" {
		return DefaultTool
	}
	return c.Tool
}

// args builds the front-end argument vector. The order matters in practice
// even though wslpath documents its flags as order-independent.
func (c *Converter) args(path, distro string, conv Conversion, forceAbsolute bool) []string {
	args := make([]string, 0, 7)
	if distro != "" {
		args = append(args, "-d", distro)
	}
	args = append(args, "-e", c.tool(), conv.Flag())
	if forceAbsolute {
		args = append(args, "-a")
	}
	return append(args, escapePath(path))
}

// escapePath doubles every backslash; wsl.exe unescapes the command line
// once before wslpath sees it.
func escapePath(path string) string {
	return strings.ReplaceAll(path, `\`, `\\`)
}
