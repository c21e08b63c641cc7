package oracle

import (
	"context"
	"fmt"
)

// MockGenerator is a test double for the Generator interface. Responses are
// keyed by call order; FailOn (1-based) makes that call fail.
type MockGenerator struct {
	Responses []string
	FailOn    int
	Err       error

	Calls   int
	Prompts []string
}

func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)

	if m.FailOn != 0 && m.Calls == m.FailOn {
		err := m.Err
		if err == nil {
			err = fmt.Errorf("mock generation failure")
		}
		return "", &GenerationError{Provider: "mock", Err: err}
	}
	if len(m.Responses) == 0 {
		return "SELECT 1", nil
	}
	idx := m.Calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
