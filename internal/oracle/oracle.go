// Package oracle wraps the text-generation service that turns a prompt into
// query text. The pipeline makes exactly one synchronous call per unit with
// no retry policy; callers wanting timeouts wrap the context.
package oracle

import "context"

// Temperature is fixed at zero so identical prompts reproduce identical
// output where the backing model allows it.
const Temperature = 0

// Generator produces query text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError reports a transport or model failure from the oracle.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return e.Provider + " generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }
