package pathconv

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

// run starts the front-end with args, waits for it and interprets the result.
func (c *Converter) run(args []string) (string, error) {
	exe := c.executable()

	cmd := exec.Command(exe, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	configureCommand(cmd)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ExitCode is -1 when the process was terminated by a signal.
			return "", &ExitError{
				Code:    exitErr.ExitCode(),
				Message: diagnostic(stderr.Bytes(), stdout.Bytes()),
			}
		}
		return "", &LaunchError{Executable: exe, Cause: err}
	}

	out, err := decodeOutput(stdout.Bytes())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
