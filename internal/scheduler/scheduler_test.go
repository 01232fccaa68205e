package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/scanwise/internal/common"
)

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) GetSetting(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", fmt.Errorf("setting %w: %s", common.ErrNotFound, key)
	}
	return v, nil
}

func (f *fakeSettings) SetSetting(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) CountExamples(_ context.Context) (int, error) {
	return f.count, f.err
}

type fixture struct {
	scheduler *Scheduler
	clock     *FakeClock
	settings  *fakeSettings
	counter   *fakeCounter
	trainings *int
	trainErr  *error
}

func newFixture(t *testing.T, config Config) *fixture {
	t.Helper()

	clock := &FakeClock{Current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	settings := newFakeSettings()
	counter := &fakeCounter{count: config.MinExamples}

	trainings := 0
	var trainErr error
	train := func(_ context.Context) error {
		trainings++
		return trainErr
	}

	return &fixture{
		scheduler: New(config, clock, nil, train, settings, counter),
		clock:     clock,
		settings:  settings,
		counter:   counter,
		trainings: &trainings,
		trainErr:  &trainErr,
	}
}

func testConfig() Config {
	return Config{
		CheckInterval: time.Hour,
		MinInterval:   24 * time.Hour,
		MinExamples:   10,
	}
}

func TestCheckAndTrainGates(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fixture)
		wantRuns int
	}{
		{
			name:     "trains when all gates pass and no prior run",
			setup:    func(_ *fixture) {},
			wantRuns: 1,
		},
		{
			name: "skips below example minimum",
			setup: func(f *fixture) {
				f.counter.count = 9
			},
			wantRuns: 0,
		},
		{
			name: "skips when interval has not elapsed",
			setup: func(f *fixture) {
				last := f.clock.Now().Add(-1 * time.Hour).Format(time.RFC3339)
				f.settings.values[lastTrainingKey] = last
			},
			wantRuns: 0,
		},
		{
			name: "trains once interval has elapsed",
			setup: func(f *fixture) {
				last := f.clock.Now().Add(-25 * time.Hour).Format(time.RFC3339)
				f.settings.values[lastTrainingKey] = last
			},
			wantRuns: 1,
		},
		{
			name: "treats malformed timestamp as never trained",
			setup: func(f *fixture) {
				f.settings.values[lastTrainingKey] = "not a timestamp"
			},
			wantRuns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testConfig())
			tt.setup(f)

			err := f.scheduler.CheckAndTrain(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantRuns, *f.trainings)
		})
	}
}

func TestCheckAndTrainRespectsReadiness(t *testing.T) {
	clock := &FakeClock{Current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	settings := newFakeSettings()
	counter := &fakeCounter{count: 100}

	ready := false
	trainings := 0
	s := New(testConfig(), clock, func() bool { return ready }, func(_ context.Context) error {
		trainings++
		return nil
	}, settings, counter)

	require.NoError(t, s.CheckAndTrain(context.Background()))
	assert.Equal(t, 0, trainings)

	ready = true
	require.NoError(t, s.CheckAndTrain(context.Background()))
	assert.Equal(t, 1, trainings)
}

func TestTrainNowBypassesCountAndInterval(t *testing.T) {
	f := newFixture(t, testConfig())
	f.counter.count = 0
	f.settings.values[lastTrainingKey] = f.clock.Now().Format(time.RFC3339)

	require.NoError(t, f.scheduler.TrainNow(context.Background()))
	assert.Equal(t, 1, *f.trainings)
}

func TestTrainNowPersistsTimestampOnSuccessOnly(t *testing.T) {
	t.Run("success stores RFC3339 timestamp", func(t *testing.T) {
		f := newFixture(t, testConfig())

		require.NoError(t, f.scheduler.TrainNow(context.Background()))

		stored, err := f.settings.GetSetting(context.Background(), lastTrainingKey)
		require.NoError(t, err)
		parsed, err := time.Parse(time.RFC3339, stored)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(f.clock.Now()))
	})

	t.Run("failure leaves timestamp untouched", func(t *testing.T) {
		f := newFixture(t, testConfig())
		*f.trainErr = errors.New("model blew up")

		err := f.scheduler.TrainNow(context.Background())
		require.Error(t, err)

		_, err = f.settings.GetSetting(context.Background(), lastTrainingKey)
		assert.True(t, common.IsNotFound(err))
	})
}

func TestTrainNowSingleFlight(t *testing.T) {
	clock := &FakeClock{Current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	settings := newFakeSettings()
	counter := &fakeCounter{count: 100}

	started := make(chan struct{})
	release := make(chan struct{})
	s := New(testConfig(), clock, nil, func(_ context.Context) error {
		close(started)
		<-release
		return nil
	}, settings, counter)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.TrainNow(context.Background())
	}()

	<-started
	err := s.TrainNow(context.Background())
	assert.ErrorIs(t, err, common.ErrTrainingInProgress)

	close(release)
	require.NoError(t, <-errCh)

	// The guard clears once the first run finishes.
	require.NoError(t, s.TrainNow(context.Background()))
}

func TestStartStop(t *testing.T) {
	f := newFixture(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.scheduler.Start(ctx)
	f.scheduler.Start(ctx) // second Start is a no-op
	f.scheduler.Stop()
	f.scheduler.Stop() // second Stop is a no-op
}

func TestCheckAndTrainPropagatesCountError(t *testing.T) {
	f := newFixture(t, testConfig())
	f.counter.err = errors.New("db closed")

	err := f.scheduler.CheckAndTrain(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, *f.trainings)
}
