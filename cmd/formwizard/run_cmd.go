package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/i18n"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type runOptions struct {
	example      string
	output       string
	format       string
	locale       string
	translations string
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [FILE]",
		Short: "Run a wizard interactively",
		Args:  cobra.MaximumNArgs(1),
		Example: `  formwizard run deploy.yaml
  formwizard run deploy.yaml --format yaml --output values.yaml
  formwizard run --example postgres --locale de --translations messages.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.example, "example", "", "run a bundled example instead of FILE")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write values to this file instead of stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", model.FormatJSON, "output format (json, yaml, pretty)")
	cmd.Flags().StringVar(&opts.locale, "locale", i18n.DefaultLocale, "locale for page messages")
	cmd.Flags().StringVar(&opts.translations, "translations", "", "YAML file with translated page messages")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string, opts *runOptions) error {
	// Fail on a bad format before asking the user anything.
	if _, err := model.Encode(nil, opts.format); err != nil {
		return err
	}

	info, err := loadDescriptor(args, opts.example)
	if err != nil {
		return err
	}

	driver := a.driver
	if driver == nil && !a.stdinIsTerminal() {
		return errors.New("run needs an interactive terminal on stdin")
	}

	logger := a.logger.With().Str(log.FieldComponent, "run").Logger()
	wizardOpts := []wizard.Option{
		wizard.WithLogger(logger),
		wizard.WithLocale(opts.locale),
	}
	if opts.translations != "" {
		catalog, err := i18n.LoadCatalog(opts.translations)
		if err != nil {
			return err
		}
		wizardOpts = append(wizardOpts, wizard.WithTranslator(catalog))
	}

	w, err := wizard.New(info, wizardOpts...)
	if err != nil {
		return err
	}

	theme := tui.PlainTheme()
	if a.stdoutIsTerminal() {
		theme = tui.DefaultTheme()
	}
	runner := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithTheme(theme),
		tui.WithLogger(logger),
		tui.WithOutput(cmd.ErrOrStderr()),
	)

	values, err := runner.Run(cmd.Context(), w)
	if err != nil {
		return err
	}

	data, err := model.Encode(values, opts.format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, data, logger); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Info().
			Str(log.FieldEvent, "values.written").
			Str(log.FieldPath, opts.output).
			Str(log.FieldFormat, opts.format).
			Msg("run: values written")
		fmt.Fprintf(cmd.ErrOrStderr(), "Values written to %s\n", opts.output)
	}
	return nil
}
