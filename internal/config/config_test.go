package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s := Load()

	assert.NotEmpty(t, s.DatabasePath)
	assert.Equal(t, 10, s.Training.MinExamples)
	assert.Equal(t, 24*time.Hour, s.Training.MinInterval)
	assert.Equal(t, time.Hour, s.Training.CheckInterval)
	assert.Equal(t, 1000, s.Store.MaxExamples)
	assert.Equal(t, 500, s.Store.MaxCorrections)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("database.path", "/tmp/scanwise-test.db")
	viper.Set("training.min_examples", 25)
	viper.Set("training.min_interval", "48h")
	viper.Set("store.max_examples", 50)

	s := Load()

	assert.Equal(t, "/tmp/scanwise-test.db", s.DatabasePath)
	assert.Equal(t, 25, s.Training.MinExamples)
	assert.Equal(t, 48*time.Hour, s.Training.MinInterval)
	assert.Equal(t, 50, s.Store.MaxExamples)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("SCANWISE_TEST_DIR", "/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "/var/db/scanwise.db", want: "/var/db/scanwise.db"},
		{name: "env var", in: "$SCANWISE_TEST_DIR/scanwise.db", want: "/data/scanwise.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
