package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/scanwise/internal/cli"
)

func parseCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse receipt OCR text into a structured record",
		Long: `Parse reads receipt OCR text from a file (or stdin when the argument
is omitted or "-") and prints the extracted record.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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

			result, err := newEngine(ctx, store).Parse(ctx, text)
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the record as JSON")

	return cmd
}
