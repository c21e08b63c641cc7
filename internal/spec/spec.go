// Package spec holds the transformation specification model: one MappingRow
// per source-column-to-target-column rule, grouped into per-target-table
// units for generation.
package spec

import "fmt"

// DefaultLoadType is assumed when a row leaves load_type empty.
const DefaultLoadType = "full"

// MappingRow is a single column-mapping rule from the transformation spec.
// Fields are fixed once loaded; optional fields keep their zero value when
// absent except LoadType, which defaults to "full".
type MappingRow struct {
	SrcProject         string
	SrcDataset         string
	SrcTable           string
	SrcColumn          string
	TgtDataset         string
	TgtTable           string
	TgtColumn          string
	TransformationRule string

	FilterCondition string
	LoadType        string
	WatermarkColumn string
}

// TargetKey identifies one generation unit.
type TargetKey struct {
	Dataset string
	Table   string
}

func (k TargetKey) String() string {
	return k.Dataset + "." + k.Table
}

// Unit is the ordered set of mapping rows that produce one target table.
type Unit struct {
	Key  TargetKey
	Rows []MappingRow
}

// SourceRef returns the unit's source table identity, taken from the first
// row. GroupRows guarantees all rows agree.
func (u *Unit) SourceRef() (project, dataset, table string) {
	r := u.Rows[0]
	return r.SrcProject, r.SrcDataset, r.SrcTable
}

// ValidationError reports a malformed or inconsistent spec.
type ValidationError struct {
	Row    int // 1-based spec row number, 0 when not row-specific
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("spec row %d: %s", e.Row, e.Reason)
	}
	return "spec: " + e.Reason
}

// Validate checks that every required field is present. The row number is
// used for error reporting only.
func (r *MappingRow) Validate(row int) error {
	required := []struct {
		name  string
		value string
	}{
		{"src_project", r.SrcProject},
		{"src_dataset", r.SrcDataset},
		{"src_table", r.SrcTable},
		{"src_column", r.SrcColumn},
		{"tgt_dataset", r.TgtDataset},
		{"tgt_table", r.TgtTable},
		{"tgt_column", r.TgtColumn},
		{"transformation_rule", r.TransformationRule},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Row: row, Reason: "missing required field " + f.name}
		}
	}
	return nil
}

// GroupRows partitions rows into units keyed by (tgt_dataset, tgt_table).
// Unit order follows the first appearance of each key; row order within a
// unit follows the input. Every row is validated, and all rows of a unit
// must name the same source table.
func GroupRows(rows []MappingRow) ([]Unit, error) {
	var units []Unit
	index := make(map[TargetKey]int)

	for i, r := range rows {
		if err := r.Validate(i + 1); err != nil {
			return nil, err
		}
		key := TargetKey{Dataset: r.TgtDataset, Table: r.TgtTable}
		pos, seen := index[key]
		if !seen {
			index[key] = len(units)
			units = append(units, Unit{Key: key, Rows: []MappingRow{r}})
			continue
		}

		first := units[pos].Rows[0]
		if r.SrcProject != first.SrcProject || r.SrcDataset != first.SrcDataset || r.SrcTable != first.SrcTable {
			return nil, &ValidationError{
				Row: i + 1,
				Reason: fmt.Sprintf("target %s maps from both %s.%s.%s and %s.%s.%s",
					key, first.SrcProject, first.SrcDataset, first.SrcTable,
					r.SrcProject, r.SrcDataset, r.SrcTable),
			}
		}
		units[pos].Rows = append(units[pos].Rows, r)
	}

	return units, nil
}
