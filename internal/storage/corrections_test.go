package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/scanwise/internal/model"
)

func TestSaveCorrection_AndQueryByField(t *testing.T) {
	s := setupStorage(t, DefaultLimits())
	ctx := context.Background()

	name := model.NewCorrection("SHELL\nTOTAL $10.00", model.FieldMerchantName, "SHEL", "SHELL", "SHELL")
	amount := model.NewCorrection("SHELL\nTOTAL $10.00", model.FieldAmount, "1.00", "10.00", "TOTAL $10.00")
	require.NoError(t, s.SaveCorrection(ctx, &name))
	require.NoError(t, s.SaveCorrection(ctx, &amount))

	got, err := s.GetCorrections(ctx, model.FieldMerchantName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SHELL", got[0].Corrected)
	assert.Equal(t, name.TextHash, got[0].TextHash)

	all, err := s.GetAllCorrections(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSaveCorrection_FIFOEviction(t *testing.T) {
	s := setupStorage(t, Limits{MaxExamples: 10, MaxCorrections: 2})
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		c := model.NewCorrection(fmt.Sprintf("TEXT %d", i), model.FieldMerchantName,
			"old", fmt.Sprintf("new-%d", i), "excerpt")
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.SaveCorrection(ctx, &c))
	}

	got, err := s.GetCorrections(ctx, model.FieldMerchantName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new-2", got[0].Corrected)
	assert.Equal(t, "new-3", got[1].Corrected)
}

func TestSettings(t *testing.T) {
	s := setupStorage(t, DefaultLimits())
	ctx := context.Background()

	_, err := s.GetSetting(ctx, "last_training")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, s.SetSetting(ctx, "last_training", "2024-01-15T00:00:00Z"))
	got, err := s.GetSetting(ctx, "last_training")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T00:00:00Z", got)

	// Overwrite.
	require.NoError(t, s.SetSetting(ctx, "last_training", "2024-02-01T00:00:00Z"))
	got, err = s.GetSetting(ctx, "last_training")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01T00:00:00Z", got)
}
