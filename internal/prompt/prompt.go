// Package prompt assembles the generation request sent to the SQL oracle.
// Rendering is deterministic: identical rows always produce a byte-identical
// prompt, which is what makes artifact writes and commits idempotent across
// runs.
package prompt

import (
	"strings"

	"github.com/specforge/specforge/internal/spec"
)

// ColumnRule is one rendered column instruction.
type ColumnRule struct {
	Source string
	Target string
	Rule   string
}

// Request is the fully resolved description of one unit's generation. Built
// once per unit and never mutated.
type Request struct {
	SrcProject string
	SrcDataset string
	SrcTable   string
	TgtDataset string
	TgtTable   string
	Columns    []ColumnRule
	Filter     string
	LoadType   string
	Watermark  string
}

// Build resolves a unit into a Request, applying defaults for the optional
// unit-level fields taken from the first row.
func Build(u spec.Unit) Request {
	first := u.Rows[0]

	loadType := first.LoadType
	if loadType == "" {
		loadType = spec.DefaultLoadType
	}

	columns := make([]ColumnRule, len(u.Rows))
	for i, r := range u.Rows {
		columns[i] = ColumnRule{Source: r.SrcColumn, Target: r.TgtColumn, Rule: r.TransformationRule}
	}

	return Request{
		SrcProject: first.SrcProject,
		SrcDataset: first.SrcDataset,
		SrcTable:   first.SrcTable,
		TgtDataset: u.Key.Dataset,
		TgtTable:   u.Key.Table,
		Columns:    columns,
		Filter:     first.FilterCondition,
		LoadType:   loadType,
		Watermark:  first.WatermarkColumn,
	}
}

// Render produces the prompt text. The REQUIREMENTS block is fixed: the
// oracle must return a bare BigQuery SELECT with no fences and no DDL/DML.
func (r Request) Render() string {
	var b strings.Builder

	b.WriteString("You are a BigQuery SQL expert.\n\n")
	b.WriteString("Generate a BigQuery SELECT query using the rules below.\n\n")

	b.WriteString("SOURCE:\n")
	b.WriteString(r.SrcProject + "." + r.SrcDataset + "." + r.SrcTable + "\n\n")

	b.WriteString("TARGET:\n")
	b.WriteString(r.TgtDataset + "." + r.TgtTable + "\n\n")

	b.WriteString("COLUMN RULES:\n")
	for _, c := range r.Columns {
		b.WriteString("- " + c.Source + " → " + c.Target + " : " + c.Rule + "\n")
	}
	b.WriteString("\n")

	b.WriteString("FILTER:\n")
	b.WriteString(r.Filter + "\n\n")

	b.WriteString("LOAD TYPE:\n")
	b.WriteString(r.LoadType + "\n\n")

	b.WriteString("WATERMARK COLUMN:\n")
	b.WriteString(r.Watermark + "\n\n")

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- BigQuery SQL only\n")
	b.WriteString("- SELECT statement only (no CREATE / INSERT / UPDATE / DELETE)\n")
	b.WriteString("- Proper column aliases\n")
	b.WriteString("- Use SAFE_CAST for type conversions and TIMESTAMP functions for time handling\n")
	b.WriteString("- If incremental load, use dbt is_incremental() logic on the watermark column\n")
	b.WriteString("- No markdown or code fences\n")
	b.WriteString("- Output ONLY SQL")

	return b.String()
}
