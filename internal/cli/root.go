// Package cli implements the wslpath2 command line on top of pathconv.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sverrirab/wslpath2/internal/config"
	"github.com/sverrirab/wslpath2/internal/interop"
	"github.com/sverrirab/wslpath2/pathconv"
)

// Version is printed by --version. It is set from main.
var Version = "dev"

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

type options struct {
	toWSL      bool
	toWindows  bool
	mixed      bool
	absolute   bool
	distro     string
	configPath string
	verbose    bool
}

// Run executes the CLI and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "wslpath2: %v\n", err)
	var uErr *usageError
	if errors.As(err, &uErr) {
		fmt.Fprintf(stderr, "Run 'wslpath2 --help' for usage.\n")
		return ExitUsage
	}
	return ExitFailure
}

// NewRootCommand constructs the wslpath2 command.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wslpath2 [-u|-w|-m] [-a] [-d distro] path...",
		Short: "Convert paths between WSL and Windows formats",
		Long: "wslpath2 converts paths between WSL and Windows formats by running\n" +
			"wslpath through wsl.exe. It works from Windows and from inside WSL.",
		Example: "  wslpath2 -u 'C:\\Users'         C:\\Users -> /mnt/c/Users\n" +
			"  wslpath2 -w /mnt/c/Users         /mnt/c/Users -> C:\\Users\n" +
			"  wslpath2 -m -d Ubuntu /home/me  /home/me -> //wsl.localhost/Ubuntu/home/me",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("at least one path is required")
			}
			return nil
		},
		RunE: opts.run,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := root.Flags()
	flags.BoolVarP(&opts.toWSL, "to-wsl", "u", false, "translate from a Windows path to a WSL path")
	flags.BoolVarP(&opts.toWindows, "to-windows", "w", false, "translate from a WSL path to a Windows path")
	flags.BoolVarP(&opts.mixed, "mixed", "m", false, "translate from a WSL path to a Windows path, with '/' instead of '\\'")
	flags.BoolVarP(&opts.absolute, "absolute", "a", false, "force result to absolute path format")
	flags.StringVarP(&opts.distro, "distro", "d", "", "WSL distribution that performs the conversion (default from config or $"+config.DistroEnv+")")
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.Path()+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")

	return root
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr(), o.verbose)

	cfg, err := o.loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mode, err := o.conversion(cfg)
	if err != nil {
		return err
	}
	distro := cfg.WSL.Distro
	if cmd.Flags().Changed("distro") {
		distro = o.distro
	}
	absolute := o.absolute || cfg.Defaults.Absolute

	host := interop.Detect()
	log.WithFields(logrus.Fields{
		"inside_wsl":  host.InsideWSL,
		"wsl_version": host.WSLVersion,
		"distro":      host.DistroName,
	}).Debug("Detected host")
	if err := host.Check(); err != nil {
		log.Warn(err)
	}

	converter := cfg.Converter()
	log.WithFields(logrus.Fields{
		"executable": converter.Executable,
		"tool":       converter.Tool,
		"mode":       mode.String(),
		"absolute":   absolute,
		"distro":     distro,
	}).Debug("Converting")

	out := cmd.OutOrStdout()
	for _, p := range args {
		result, err := converter.Convert(p, distro, mode, absolute)
		if err != nil {
			return fmt.Errorf("converting %q: %w", p, err)
		}
		log.WithFields(logrus.Fields{"path": p, "result": result}).Debug("Converted")
		fmt.Fprintln(out, result)
	}
	return nil
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load()
}

// conversion resolves the mode flags, falling back to the configured default.
func (o *options) conversion(cfg *config.Config) (pathconv.Conversion, error) {
	var picked []pathconv.Conversion
	if o.toWSL {
		picked = append(picked, pathconv.WindowsToWSL)
	}
	if o.toWindows {
		picked = append(picked, pathconv.WSLToWindows)
	}
	if o.mixed {
		picked = append(picked, pathconv.WSLToWindowsLinuxStyle)
	}

	switch len(picked) {
	case 0:
		return cfg.Conversion()
	case 1:
		return picked[0], nil
	default:
		return 0, usageErrorf("only one of -u, -w, -m may be given")
	}
}
