package service

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	ConfirmationCodeLength = 6
	ConfirmationAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Bytes at or above this bound are discarded so every symbol is equally
	// likely (252 = 7 * 36).
	uniformByteLimit = 256 - 256%len(ConfirmationAlphabet)
)

// RandomCodeGenerator draws confirmation codes uniformly from
// ConfirmationAlphabet using bytes read from source.
type RandomCodeGenerator struct {
	source io.Reader
}

// NewRandomCodeGenerator returns a generator reading from source, or from
// crypto/rand when source is nil.
func NewRandomCodeGenerator(source io.Reader) *RandomCodeGenerator {
	if source == nil {
		source = rand.Reader
	}
	return &RandomCodeGenerator{source: source}
}

func (g *RandomCodeGenerator) Generate() (string, error) {
	code := make([]byte, 0, ConfirmationCodeLength)
	buf := make([]byte, ConfirmationCodeLength)
	for len(code) < ConfirmationCodeLength {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= uniformByteLimit {
				continue
			}
			code = append(code, ConfirmationAlphabet[int(b)%len(ConfirmationAlphabet)])
			if len(code) == ConfirmationCodeLength {
				break
			}
		}
	}
	return string(code), nil
}
