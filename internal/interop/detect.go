// Package interop detects whether wslpath2 runs inside WSL and whether
// Windows interop (needed to start wsl.exe from Linux) is available.
package interop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Info holds detected host environment information.
type Info struct {
	InsideWSL      bool
	WSLVersion     int    // 1 or 2, 0 outside WSL
	DistroName     string // e.g. "Ubuntu"
	InteropEnabled bool   // binfmt_misc WSLInterop registration is enabled
	InteropSocket  string // $WSL_INTEROP
}

// Detect inspects the running system. Outside WSL (e.g. on the Windows
// host) it returns an Info with InsideWSL false.
func Detect() *Info {
	return detect("/", os.Getenv)
}

func detect(root string, getenv func(string) string) *Info {
	info := &Info{}

	procVersion, err := os.ReadFile(filepath.Join(root, "proc", "version"))
	if err != nil {
		return info
	}
	versionStr := strings.ToLower(string(procVersion))
	if !strings.Contains(versionStr, "microsoft") {
		return info
	}
	info.InsideWSL = true

	if strings.Contains(versionStr, "wsl2") {
		info.WSLVersion = 2
	} else if _, err := os.Stat(filepath.Join(root, "run", "WSL")); err == nil {
		// Some WSL2 kernels omit "WSL2"; /run/WSL only exists on WSL2.
		info.WSLVersion = 2
	} else {
		info.WSLVersion = 1
	}

	info.DistroName = getenv("WSL_DISTRO_NAME")
	info.InteropSocket = getenv("WSL_INTEROP")
	info.InteropEnabled = interopEnabled(root)
	return info
}

// Check returns an actionable error when running inside WSL without a
// working interop setup, since wsl.exe cannot be started then.
func (i *Info) Check() error {
	if !i.InsideWSL {
		return nil
	}
	if !i.InteropEnabled {
		return fmt.Errorf(
			"WSL interop is not enabled.\n" +
				"Enable it in /etc/wsl.conf:\n" +
				"  [interop]\n" +
				"  enabled = true\n" +
				"Then restart WSL: wsl --shutdown",
		)
	}
	if i.WSLVersion == 2 && i.InteropSocket == "" {
		return fmt.Errorf(
			"$WSL_INTEROP is not set. This can happen with systemd.\n" +
				"Try: ls /run/WSL/*_interop\n" +
				"And export WSL_INTEROP to the correct socket path.",
		)
	}
	return nil
}

func interopEnabled(root string) bool {
	for _, name := range []string{"WSLInterop", "WSLInterop-late"} {
		data, err := os.ReadFile(filepath.Join(root, "proc", "sys", "fs", "binfmt_misc", name))
		if err != nil {
			continue
		}
		if strings.Contains(string(data), "enabled") {
			return true
		}
	}
	return false
}
