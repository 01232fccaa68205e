package learn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/scanwise/internal/model"
)

type fakeSource struct {
	examples []model.TrainingExample
	err      error
}

func (f *fakeSource) GetExamplesWithLabel(_ context.Context, field model.FieldName) ([]model.TrainingExample, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.TrainingExample
	for _, ex := range f.examples {
		if _, ok := ex.Label(field); ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func TestTrainer_TrainAll(t *testing.T) {
	source := &fakeSource{examples: []model.TrainingExample{
		model.NewTrainingExample("SHELL\nTOTAL $10.00", map[model.FieldName]string{
			model.FieldMerchantName: "SHELL",
			model.FieldAmount:       "10.00",
		}),
		model.NewTrainingExample("TARGET\nTOTAL $25.00", map[model.FieldName]string{
			model.FieldMerchantName: "TARGET",
		}),
	}}
	trainer := NewTrainer(source, NewModelSet())

	report, err := trainer.TrainAll(context.Background())
	require.NoError(t, err)
	assert.False(t, report.NoData)
	assert.Equal(t, 2, report.ExamplesByField[model.FieldMerchantName])
	assert.Equal(t, 1, report.ExamplesByField[model.FieldAmount])
	assert.Equal(t, 0, report.ExamplesByField[model.FieldMerchantAddress])

	_, _, ok := trainer.Models().Predict(model.FieldMerchantName, "SHELL\nTOTAL $10.00")
	assert.True(t, ok)

	// No address examples: no model for that field.
	_, _, ok = trainer.Models().Predict(model.FieldMerchantAddress, "anything")
	assert.False(t, ok)
}

func TestTrainer_NoDataLeavesSnapshotInPlace(t *testing.T) {
	models := NewModelSet()
	seeded := Train(model.FieldMerchantName, []model.TrainingExample{
		model.NewTrainingExample("SHELL", map[model.FieldName]string{model.FieldMerchantName: "SHELL"}),
	})
	require.NotNil(t, seeded)
	models.set(model.FieldMerchantName, seeded)

	trainer := NewTrainer(&fakeSource{}, models)
	report, err := trainer.TrainAll(context.Background())
	require.NoError(t, err)
	assert.True(t, report.NoData)

	// The previously-trained model still answers.
	label, _, ok := models.Predict(model.FieldMerchantName, "SHELL")
	assert.True(t, ok)
	assert.Equal(t, "SHELL", label)
}

func TestTrainer_SourceErrorPropagates(t *testing.T) {
	trainer := NewTrainer(&fakeSource{err: errors.New("db closed")}, NewModelSet())
	_, err := trainer.TrainAll(context.Background())
	assert.Error(t, err)
}
