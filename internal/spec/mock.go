package spec

import "context"

// MockLoader is a test double for the Loader interface.
type MockLoader struct {
	Rows    []MappingRow
	LoadErr error
}

func (m *MockLoader) Load(_ context.Context) ([]MappingRow, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Rows, nil
}
