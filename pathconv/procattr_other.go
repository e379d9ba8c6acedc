//go:build !windows

package pathconv

import "os/exec"

// configureCommand is a no-op: process creation flags only exist on Windows.
func configureCommand(*exec.Cmd) {}
