package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when neither a file argument nor piped stdin
// provides any receipt text.
var ErrNoInput = errors.New("no receipt text provided")

// ReadReceiptText loads OCR text from a file path, or from stdin when
// path is empty or "-".
func ReadReceiptText(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // user-supplied input path
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", ErrNoInput
	}
	return text, nil
}
