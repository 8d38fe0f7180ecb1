package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

// app carries the collaborators commands share. Tests replace the prompt
// driver and the terminal probe.
type app struct {
	driver     tui.PromptDriver
	isTerminal func(fd uintptr) bool
	logLevel   string
	logger     zerolog.Logger
}

func defaultApp() *app {
	return &app{
		isTerminal: func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		logger: zerolog.Nop(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formwizard",
		Short: "Run multi-page input wizards in the terminal",
		Long: `formwizard walks a wizard descriptor page by page, validates every page
before moving forward and prints the collected values.

Descriptors are JSON, YAML or TOML files. Run 'formwizard examples' to list
the bundled ones.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = log.Configure(log.Config{
				Level:  a.logLevel,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to LOG_LEVEL or info")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newExamplesCmd(a))
	return cmd
}

func (a *app) stdinIsTerminal() bool {
	return a.isTerminal != nil && a.isTerminal(os.Stdin.Fd())
}

func (a *app) stdoutIsTerminal() bool {
	return a.isTerminal != nil && a.isTerminal(os.Stdout.Fd())
}
