// Package tokens estimates how many model tokens a context document costs.
package tokens

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultModel    = "gpt-4o"
	defaultEncoding = "cl100k_base"
)

// Counter estimates token counts for text using a tiktoken encoding.
type Counter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewCounter resolves the encoding for the requested model, falling back to
// cl100k_base for models tiktoken does not know.
func NewCounter(model string) (*Counter, error) {
	model = strings.TrimSpace(strings.ToLower(model))
	if model == "" {
		model = defaultModel
	}

	encoding, err := tiktoken.EncodingForModel(model)
	if err == nil && encoding != nil {
		return &Counter{encoding: encoding, name: model}, nil
	}

	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncoding)
	if fallbackErr != nil {
		return nil, fmt.Errorf("initialize fallback tokenizer: %w", fallbackErr)
	}
	return &Counter{encoding: fallback, name: defaultEncoding}, nil
}

// Name returns the encoding or model name in use.
func (c *Counter) Name() string {
	return c.name
}

// Count returns the token count of the input text.
func (c *Counter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}
