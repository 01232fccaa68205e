package entity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexRecognizer(t *testing.T) {
	r := NewRegexRecognizer()
	found, err := r.Recognize(context.Background(), "SHELL\n123 MAIN ST\n(555) 123-4567\nhelp@shell.com\n01/15/24\nTOTAL $36.32")
	require.NoError(t, err)

	assert.Contains(t, found[TypeMoney], "$36.32")
	assert.Contains(t, found[TypeDate], "01/15/24")
	assert.Contains(t, found[TypeAddress], "123 MAIN ST")
	assert.Contains(t, found[TypePhone], "(555) 123-4567")
	assert.Contains(t, found[TypeEmail], "help@shell.com")
}

func TestAdapter_BestAmountPicksLargest(t *testing.T) {
	a := NewAdapter(NewRegexRecognizer())
	entities := a.Extract(context.Background(), "SUB $10.00\nline $23.40\nsmall $1.20")

	amount, currency, ok := entities.BestAmount()
	require.True(t, ok)
	assert.Equal(t, "23.40", amount.StringFixed(2))
	assert.Equal(t, "USD", currency)
}

func TestAdapter_FirstDate(t *testing.T) {
	a := NewAdapter(NewRegexRecognizer())
	entities := a.Extract(context.Background(), "01/15/24 then 02/20/25")
	assert.Equal(t, "01/15/24", entities.First(TypeDate))
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(context.Context, string) (Entities, error) {
	return nil, errors.New("recognizer offline")
}

func TestAdapter_RecognizerFailureDegradesToEmpty(t *testing.T) {
	a := NewAdapter(failingRecognizer{})
	entities := a.Extract(context.Background(), "TOTAL $36.32")
	assert.Empty(t, entities)
}

func TestAdapter_NilRecognizer(t *testing.T) {
	a := NewAdapter(nil)
	entities := a.Extract(context.Background(), "TOTAL $36.32")
	assert.Empty(t, entities)
}

func TestChunkText(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := chunkText("hello\nworld", MaxChunkSize)
		assert.Equal(t, []string{"hello\nworld"}, chunks)
	})

	t.Run("splits on line boundaries", func(t *testing.T) {
		lines := make([]string, 0, 60)
		for i := 0; i < 60; i++ {
			lines = append(lines, strings.Repeat("x", 20))
		}
		chunks := chunkText(strings.Join(lines, "\n"), 100)
		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 100)
		}
	})

	t.Run("hard splits an overlong line", func(t *testing.T) {
		chunks := chunkText(strings.Repeat("y", 1200), MaxChunkSize)
		require.Len(t, chunks, 3)
		assert.Len(t, chunks[0], MaxChunkSize)
	})

	t.Run("hard split lands on rune boundaries", func(t *testing.T) {
		// 200 three-byte runes: 600 bytes, and byte 500 falls mid-rune.
		text := strings.Repeat("€", 200)
		chunks := chunkText(text, MaxChunkSize)
		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c))
			assert.LessOrEqual(t, len(c), MaxChunkSize)
		}
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("empty text yields no chunks", func(t *testing.T) {
		assert.Nil(t, chunkText("", MaxChunkSize))
	})
}
