package main

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"localefinder/internal/config"
	"localefinder/pkg/logger"
)

// app holds what every subcommand shares.
type app struct {
	fs         afero.Fs
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	verbose    bool
}

func (a *app) logger() *slog.Logger {
	return logger.New(a.stderr, a.verbose)
}

func (a *app) config() (*config.Config, error) {
	return config.Load(a.fs, a.configPath)
}

func newRootCmd(fsys afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	a := &app{fs: fsys, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "localefinder",
		Short: "Find translation keys in source files and keep locale catalogs in sync",
		Long: `localefinder scans source files for translation function calls, adds the
keys it finds to every locale catalog (translating them on the way) and
removes keys that are no longer used.`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default "+config.DefaultFile+" when present)")
	flags.BoolVar(&a.verbose, "verbose", false, "log debug details, including added and removed keys")
	flags.BoolVar(&a.verbose, "v", false, "shorthand for --verbose")
	_ = flags.MarkHidden("v")

	root.AddCommand(newFindCmd(a), newCheckCmd(a))
	return root
}
