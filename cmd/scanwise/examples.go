package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/joshsymonds/scanwise/internal/cli"
)

func examplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Manage stored training examples",
	}

	cmd.AddCommand(examplesListCmd())
	cmd.AddCommand(examplesExportCmd())
	cmd.AddCommand(examplesImportCmd())
	cmd.AddCommand(examplesClearCmd())

	return cmd
}

func examplesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored training examples",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			examples, err := store.GetExamples(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(examples) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No training examples stored."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%d training examples", len(examples))))
			for _, ex := range examples {
				fields := make([]string, 0, len(ex.Labels))
				for field := range ex.Labels {
					fields = append(fields, string(field))
				}
				sort.Strings(fields)

				fmt.Fprintf(out, "  %s  %s  %v\n",
					ex.Hash[:12],
					ex.CreatedAt.Format("2006-01-02 15:04"),
					fields)
			}
			return nil
		},
	}
}

func examplesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export training examples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			w := cmd.OutOrStdout()
			if args[0] != "-" {
				f, err := os.Create(args[0]) //nolint:gosec // user-supplied output path
				if err != nil {
					return fmt.Errorf("creating %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := store.ExportExamples(ctx, w); err != nil {
				return err
			}

			if args[0] != "-" {
				fmt.Fprintln(cmd.OutOrStdout(),
					cli.FormatSuccess(fmt.Sprintf("Exported examples to %s", args[0])))
			}
			return nil
		},
	}
}

func examplesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import training examples from JSON, replacing the current set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0]) //nolint:gosec // user-supplied input path
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := progressbar.DefaultBytes(-1, "importing")
			reader := progressbar.NewReader(f, bar)
			count, err := store.ImportExamples(ctx, &reader)
			_ = bar.Finish()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				cli.FormatSuccess(fmt.Sprintf("Imported %d examples", count)))
			return nil
		},
	}
}

func examplesClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored training examples",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			count, err := store.CountExamples(ctx)
			if err != nil {
				return err
			}
			if err := store.ClearExamples(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				cli.FormatSuccess(fmt.Sprintf("Cleared %d examples", count)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
