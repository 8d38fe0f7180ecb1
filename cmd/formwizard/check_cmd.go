package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/widgets"
)

func newCheckCmd(a *app) *cobra.Command {
	var example string
	cmd := &cobra.Command{
		Use:   "check [FILE]",
		Short: "Validate a descriptor and list its pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := loadDescriptor(args, example)
			if err != nil {
				return err
			}
			a.logger.Debug().Str(log.FieldWizard, info.Name).Msg("check: descriptor valid")
			printOutline(cmd.OutOrStdout(), info)
			for _, warning := range widgets.UnknownHints(info) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&example, "example", "", "check a bundled example instead of FILE")
	return cmd
}

func newExamplesCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the bundled example wizards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := formwizard.Examples()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range descriptor.Names(all) {
				fmt.Fprintf(out, "%-16s %s\n", name, all[name].Title)
			}
			return nil
		},
	}
}

func printOutline(out io.Writer, info descriptor.Wizard) {
	title := info.Title
	if title == "" {
		title = info.Name
	}
	fmt.Fprintf(out, "%s: %d pages\n", title, len(info.Pages))
	for i, p := range info.Pages {
		marker := ""
		if p.IsSummaryPage {
			marker = " [summary]"
		}
		fmt.Fprintf(out, "  %d. %s (%d fields)%s\n", i+1, p.Title, len(p.Fields), marker)
	}
}
