package spec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const specHeader = "src_project,src_dataset,src_table,src_column,tgt_dataset,tgt_table,tgt_column,transformation_rule,filter_condition,load_type,watermark_column\n"

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transformation_spec.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVLoaderLoad(t *testing.T) {
	path := writeSpecFile(t, specHeader+
		"proj,raw,orders_raw,id,analytics,orders,order_id,cast to int64,status = 'active',incremental,updated_at\n"+
		"proj,raw,orders_raw,total,analytics,orders,order_total,round to 2 decimals,,,\n")

	rows, err := NewCSVLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.SrcColumn != "id" || first.TgtColumn != "order_id" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.FilterCondition != "status = 'active'" || first.LoadType != "incremental" || first.WatermarkColumn != "updated_at" {
		t.Errorf("optional fields not loaded: %+v", first)
	}

	second := rows[1]
	if second.FilterCondition != "" || second.LoadType != "" || second.WatermarkColumn != "" {
		t.Errorf("expected empty optional fields, got %+v", second)
	}
}

func TestCSVLoaderMissingColumn(t *testing.T) {
	path := writeSpecFile(t, "src_project,src_dataset,src_table\nproj,raw,orders_raw\n")

	_, err := NewCSVLoader(path).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing required columns")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestCSVLoaderEmptyFile(t *testing.T) {
	path := writeSpecFile(t, "")

	_, err := NewCSVLoader(path).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for empty spec file")
	}
}

func TestCSVLoaderMissingFile(t *testing.T) {
	_, err := NewCSVLoader(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing spec file")
	}
}
