package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/scanwise/internal/cli"
	"github.com/joshsymonds/scanwise/internal/suggest"
)

func suggestCmd() *cobra.Command {
	var (
		fieldFlag string
		current   string
	)

	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Suggest alternative values for a field from past corrections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			field, err := parseFieldName(fieldFlag)
			if err != nil {
				return err
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			text, err := cli.ReadReceiptText(path, cmd.InOrStdin())
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			values, err := suggest.NewEngine(store).Suggestions(ctx, text, field, current)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(values) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No suggestions."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Suggestions for %s", field)))
			for i, v := range values {
				fmt.Fprintf(out, "  %d. %s\n", i+1, v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fieldFlag, "field", "", "field to suggest values for")
	cmd.Flags().StringVar(&current, "current", "", "the value currently extracted")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}
