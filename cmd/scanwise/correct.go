package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/scanwise/internal/cli"
)

func correctCmd() *cobra.Command {
	var (
		fieldFlag string
		original  string
		corrected string
	)

	cmd := &cobra.Command{
		Use:   "correct [file]",
		Short: "Record a correction to an extracted field",
		Long: `Correct records that a field was extracted wrong for the given receipt
text. Corrections feed both future suggestions and model training.`,
		Args: cobra.MaximumNArgs(1),
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

			if err := newEngine(ctx, store).Correct(ctx, text, field, original, corrected); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				cli.FormatSuccess(fmt.Sprintf("Recorded correction for %s: %q", field, corrected)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fieldFlag, "field", "", "field being corrected (merchantName, merchantAddress, transactionDate, amount)")
	cmd.Flags().StringVar(&original, "original", "", "the value that was extracted")
	cmd.Flags().StringVar(&corrected, "corrected", "", "the value it should have been")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("corrected")

	return cmd
}
