package spec

import "context"

// Loader provides the raw mapping rows from wherever the spec lives.
type Loader interface {
	Load(ctx context.Context) ([]MappingRow, error)
}
