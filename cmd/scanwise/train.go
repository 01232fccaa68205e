package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/joshsymonds/scanwise/internal/cli"
	"github.com/joshsymonds/scanwise/internal/common"
	"github.com/joshsymonds/scanwise/internal/learn"
	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/scheduler"
)

func trainCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Retrain the field prediction models",
		Long: `Train rebuilds the per-field prediction models from stored examples.
Without --force the run is subject to the scheduling policy (minimum
example count and minimum interval since the last run).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, settings, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			trainer := learn.NewTrainer(store, learn.NewModelSet())

			train := func(ctx context.Context) error {
				bar := progressbar.Default(int64(len(model.TrainableFields)), "training")
				counts := make(map[model.FieldName]int, len(model.TrainableFields))
				for _, field := range model.TrainableFields {
					n, err := trainer.TrainField(ctx, field)
					if err != nil {
						return err
					}
					counts[field] = n
					_ = bar.Add(1)
				}
				_ = bar.Finish()

				trainedAny := false
				for _, field := range model.TrainableFields {
					if counts[field] > 0 {
						trainedAny = true
					}
					fmt.Fprintf(out, "  %-18s %d examples\n", field, counts[field])
				}
				if !trainedAny {
					fmt.Fprintln(out, cli.FormatWarning("No labeled examples yet; models unchanged."))
				}
				return nil
			}

			sched := scheduler.New(settings.Training, nil, nil, train, store, store)

			if force {
				err = sched.TrainNow(ctx)
			} else {
				err = sched.CheckAndTrain(ctx)
			}
			if errors.Is(err, common.ErrTrainingInProgress) {
				return common.NewUserError("another training run is already in progress", nil)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("Training check complete."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "train immediately, ignoring the scheduling policy")

	return cmd
}
