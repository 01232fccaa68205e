package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/scanwise/internal/engine"
	"github.com/joshsymonds/scanwise/internal/entity"
	"github.com/joshsymonds/scanwise/internal/learn"
	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/suggest"
	"github.com/joshsymonds/scanwise/internal/testutil"
)

const restaurantReceipt = `PASTA PALACE
456 OAK AVE
SPRINGFIELD, IL 62704
03/12/2025 19:45
SERVER: DANA
TABLE 7
SUBTOTAL $41.00
TIP $8.00
TOTAL $49.00`

// TestParseCorrectTrainLoop exercises the full feedback cycle against a
// real database: parse captures an example, a correction relabels it,
// training rebuilds the models, and suggestions surface the fix.
func TestParseCorrectTrainLoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	models := learn.NewModelSet()
	trainer := learn.NewTrainer(db.Storage, models)
	suggester := suggest.NewEngine(db.Storage)
	adapter := entity.NewAdapter(entity.NewRegexRecognizer())

	e := engine.New(db.Storage, adapter, models, suggester)

	result, err := e.Parse(ctx, restaurantReceipt)
	require.NoError(t, err)
	assert.Equal(t, model.ReceiptTypeRestaurant, result.Type)
	assert.Equal(t, "PASTA PALACE", result.MerchantName)
	require.NotNil(t, result.Amount)
	assert.Equal(t, "49.00", result.Amount.StringFixed(2))

	count, err := db.Storage.CountExamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// User fixes the merchant name.
	require.NoError(t, e.Correct(ctx, restaurantReceipt,
		model.FieldMerchantName, "PASTA PALACE", "Pasta Palace Trattoria"))

	corrections, err := db.Storage.GetAllCorrections(ctx)
	require.NoError(t, err)
	require.Len(t, corrections, 1)

	// Suggestions for the same receipt now carry the corrected value.
	values, err := suggester.Suggestions(ctx, restaurantReceipt,
		model.FieldMerchantName, "PASTA PALACE")
	require.NoError(t, err)
	assert.Contains(t, values, "Pasta Palace Trattoria")

	// Retraining picks the corrected label up as a prediction.
	report, err := trainer.TrainAll(ctx)
	require.NoError(t, err)
	assert.Positive(t, report.ExamplesByField[model.FieldMerchantName])

	reparsed, err := e.Parse(ctx, restaurantReceipt)
	require.NoError(t, err)
	assert.Equal(t, "Pasta Palace Trattoria", reparsed.MerchantName)
}
