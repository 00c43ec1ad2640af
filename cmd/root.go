package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"gcop/internal/config"
	"gcop/internal/installer"
	"gcop/internal/logger"
	"gcop/internal/runner"
	"gcop/internal/system"
	"gcop/internal/version"
)

// childExit carries the child's exit status out of the cobra Run hook.
var childExit int

// rootCmd is the entire CLI surface of the wrapper. Flag parsing is
// disabled and no subcommands are registered: every argument, including
// things that look like flags or command names (`commit`, `review`,
// `--help`), belongs to the gcop-rs binary and is forwarded verbatim.
// Wrapper behavior is tuned through GCOP_* environment variables and the
// optional settings file instead.
var rootCmd = &cobra.Command{
	Use:                "gcop",
	Short:              "Bootstrap wrapper for the gcop-rs commit message generator and code reviewer",
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runWrapper,
}

// Execute runs the wrapper and returns the process exit status: the
// child's own code, 1 for resolution/download/start failures, 130 when the
// run was interrupted.
func Execute() int {
	sys := system.Host{}
	logger.Init(sys.Getenv("GCOP_WRAPPER_DEBUG") == "1")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Error: %v\n", err)
		return 1
	}
	return childExit
}

// runWrapper is the whole control flow: ensure the binary, run it, record
// its exit status. Errors returned here terminate with status 1 before any
// child process has started.
func runWrapper(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	sys := system.Host{}

	settings, err := config.Load(fs, sys)
	if err != nil {
		return err
	}

	expected := settings.Version
	if expected == "" {
		expected = version.Version
	}

	binary, err := installer.New(fs, sys, settings).EnsureBinary(expected)
	if err != nil {
		return err
	}

	code, err := runner.Run(binary, args)
	if err != nil {
		return err
	}
	childExit = code
	return nil
}
