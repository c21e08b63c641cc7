package spec

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

var requiredColumns = []string{
	"src_project", "src_dataset", "src_table", "src_column",
	"tgt_dataset", "tgt_table", "tgt_column", "transformation_rule",
}

// CSVLoader reads mapping rows from a CSV file with a header row.
type CSVLoader struct {
	Path string
}

// NewCSVLoader creates a loader for the given spec file.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{Path: path}
}

func (l *CSVLoader) Load(_ context.Context) ([]MappingRow, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening spec file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing spec file %s: %w", l.Path, err)
	}
	if len(records) == 0 {
		return nil, &ValidationError{Reason: "spec file is empty"}
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &ValidationError{Reason: "missing required column " + name}
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]MappingRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, MappingRow{
			SrcProject:         field(record, "src_project"),
			SrcDataset:         field(record, "src_dataset"),
			SrcTable:           field(record, "src_table"),
			SrcColumn:          field(record, "src_column"),
			TgtDataset:         field(record, "tgt_dataset"),
			TgtTable:           field(record, "tgt_table"),
			TgtColumn:          field(record, "tgt_column"),
			TransformationRule: field(record, "transformation_rule"),
			FilterCondition:    field(record, "filter_condition"),
			LoadType:           field(record, "load_type"),
			WatermarkColumn:    field(record, "watermark_column"),
		})
	}
	return rows, nil
}
