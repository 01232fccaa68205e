package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joshsymonds/scanwise/internal/common"
)

// lastTrainingKey is the settings key holding the last successful
// training timestamp, as RFC3339.
const lastTrainingKey = "last_training_at"

// TrainFunc performs one training run.
type TrainFunc func(ctx context.Context) error

// ReadinessFunc gates periodic training on device state. The default
// always admits; embedders can wire battery or charging checks in.
type ReadinessFunc func() bool

// SettingsStore persists the last-training timestamp.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// ExampleCounter reports how many training examples are stored.
type ExampleCounter interface {
	CountExamples(ctx context.Context) (int, error)
}

// Config holds the scheduling policy knobs.
type Config struct {
	// CheckInterval is how often the periodic check fires.
	CheckInterval time.Duration
	// MinInterval is the minimum time between successful trainings.
	MinInterval time.Duration
	// MinExamples is the example count required before periodic
	// training starts.
	MinExamples int
}

// DefaultConfig returns the standard scheduling policy.
func DefaultConfig() Config {
	return Config{
		CheckInterval: time.Hour,
		MinInterval:   24 * time.Hour,
		MinExamples:   10,
	}
}

// Scheduler triggers training runs on a periodic policy or on demand.
// Only one run may be in flight at a time.
type Scheduler struct {
	clock    Clock
	ready    ReadinessFunc
	train    TrainFunc
	settings SettingsStore
	counter  ExampleCounter
	config   Config

	mu       sync.Mutex
	training bool
	stop     chan struct{}
	done     chan struct{}
}

// New creates a scheduler. A nil clock defaults to the system clock and
// a nil readiness predicate always admits.
func New(config Config, clock Clock, ready ReadinessFunc, train TrainFunc, settings SettingsStore, counter ExampleCounter) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Scheduler{
		config:   config,
		clock:    clock,
		ready:    ready,
		train:    train,
		settings: settings,
		counter:  counter,
	}
}

// Start launches the periodic check loop. It returns immediately;
// Stop shuts the loop down.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return // already running
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(ctx, s.stop, s.done)
}

// Stop shuts down the periodic loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (s *Scheduler) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if err := s.CheckAndTrain(ctx); err != nil {
				slog.Warn("periodic training check failed", "error", err)
			}
		}
	}
}

// CheckAndTrain runs the periodic policy once: train only when the
// store has enough examples, enough time has passed since the last
// successful run, and the device is ready.
func (s *Scheduler) CheckAndTrain(ctx context.Context) error {
	count, err := s.counter.CountExamples(ctx)
	if err != nil {
		return fmt.Errorf("counting examples: %w", err)
	}
	if count < s.config.MinExamples {
		slog.Debug("skipping training, not enough examples",
			"count", count, "min", s.config.MinExamples)
		return nil
	}

	last, err := s.lastTraining(ctx)
	if err != nil {
		return err
	}
	if !last.IsZero() && s.clock.Now().Sub(last) < s.config.MinInterval {
		slog.Debug("skipping training, interval not elapsed", "last", last)
		return nil
	}

	if !s.ready() {
		slog.Debug("skipping training, device not ready")
		return nil
	}

	return s.TrainNow(ctx)
}

// TrainNow forces an immediate training run, bypassing the example
// count and interval gates but not the single-flight guard. The
// last-training timestamp is persisted only on success.
func (s *Scheduler) TrainNow(ctx context.Context) error {
	s.mu.Lock()
	if s.training {
		s.mu.Unlock()
		return common.ErrTrainingInProgress
	}
	s.training = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.training = false
		s.mu.Unlock()
	}()

	if err := s.train(ctx); err != nil {
		return fmt.Errorf("training run failed: %w", err)
	}

	now := s.clock.Now().UTC().Format(time.RFC3339)
	if err := s.settings.SetSetting(ctx, lastTrainingKey, now); err != nil {
		// The run itself succeeded; a failed timestamp write only
		// means the next periodic check may retrain early.
		slog.Warn("failed to persist last-training timestamp", "error", err)
	}
	return nil
}

// lastTraining loads the persisted timestamp; absent means never.
func (s *Scheduler) lastTraining(ctx context.Context) (time.Time, error) {
	raw, err := s.settings.GetSetting(ctx, lastTrainingKey)
	if err != nil {
		if common.IsNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("loading last-training timestamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.Warn("malformed last-training timestamp, treating as never", "value", raw)
		return time.Time{}, nil
	}
	return t, nil
}
