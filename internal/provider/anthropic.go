package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// NewAnthropicClient returns a client using the API key from the env.
func NewAnthropicClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

const DefaultModel = anthropic.ModelClaudeSonnet4_20250514

// Fixed sampling parameters: deterministic output, bounded length.
const (
	MaxTokens   = int64(800)
	Temperature = 0.0
)

// DefaultMaxRounds bounds tool-execution rounds per query.
const DefaultMaxRounds = 2
