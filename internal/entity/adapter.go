package entity

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaxChunkSize bounds the text passed to the recognizer per call.
const MaxChunkSize = 500

// Adapter chunks text to the recognizer's size limit and concatenates
// the per-chunk results. Recognizer failures degrade to an empty result
// set; they never abort the caller's extraction.
type Adapter struct {
	recognizer Recognizer
}

// NewAdapter wraps a recognizer. A nil recognizer yields an adapter
// that always returns empty results.
func NewAdapter(r Recognizer) *Adapter {
	return &Adapter{recognizer: r}
}

// Extract runs the recognizer over text and returns all entities found.
// The returned map is never nil.
func (a *Adapter) Extract(ctx context.Context, text string) Entities {
	all := Entities{}
	if a.recognizer == nil {
		return all
	}

	for _, chunk := range chunkText(text, MaxChunkSize) {
		found, err := a.recognizer.Recognize(ctx, chunk)
		if err != nil {
			slog.Warn("entity recognition failed for chunk",
				"chunk_len", len(chunk), "error", err)
			continue
		}
		all.merge(found)
	}
	return all
}

// chunkText splits text into segments of at most max bytes, preferring
// line boundaries. A single line longer than max is hard-split.
func chunkText(text string, max int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= max {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > max {
			flush()
			cut := max
			// Back up so the cut never lands inside a multi-byte rune.
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = max
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if current.Len() > 0 && current.Len()+len(line)+1 > max {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}
