package spec

import (
	"errors"
	"testing"
)

func row(srcTable, srcCol, tgtDataset, tgtTable, tgtCol string) MappingRow {
	return MappingRow{
		SrcProject:         "proj",
		SrcDataset:         "raw",
		SrcTable:           srcTable,
		SrcColumn:          srcCol,
		TgtDataset:         tgtDataset,
		TgtTable:           tgtTable,
		TgtColumn:          tgtCol,
		TransformationRule: "direct move",
	}
}

func TestGroupRowsPreservesOrder(t *testing.T) {
	rows := []MappingRow{
		row("orders_raw", "id", "analytics", "orders", "order_id"),
		row("customers_raw", "id", "analytics", "customers", "customer_id"),
		row("orders_raw", "total", "analytics", "orders", "order_total"),
	}

	units, err := GroupRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].Key != (TargetKey{"analytics", "orders"}) {
		t.Errorf("expected first unit to be analytics.orders (first-seen order), got %s", units[0].Key)
	}
	if units[1].Key != (TargetKey{"analytics", "customers"}) {
		t.Errorf("expected second unit to be analytics.customers, got %s", units[1].Key)
	}

	orders := units[0]
	if len(orders.Rows) != 2 {
		t.Fatalf("expected 2 rows in orders unit, got %d", len(orders.Rows))
	}
	if orders.Rows[0].SrcColumn != "id" || orders.Rows[1].SrcColumn != "total" {
		t.Errorf("row order not preserved within unit: %q then %q",
			orders.Rows[0].SrcColumn, orders.Rows[1].SrcColumn)
	}
}

func TestGroupRowsEveryRowInExactlyOneUnit(t *testing.T) {
	rows := []MappingRow{
		row("a_raw", "c1", "ds", "a", "c1"),
		row("b_raw", "c2", "ds", "b", "c2"),
		row("a_raw", "c3", "ds", "a", "c3"),
		row("c_raw", "c4", "other", "a", "c4"), // same table name, different dataset
	}

	units, err := GroupRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0
	for _, u := range units {
		for _, r := range u.Rows {
			if r.TgtDataset != u.Key.Dataset || r.TgtTable != u.Key.Table {
				t.Errorf("row %s placed under wrong key %s", r.TgtColumn, u.Key)
			}
			total++
		}
	}
	if total != len(rows) {
		t.Errorf("expected %d rows across units, got %d", len(rows), total)
	}
	if len(units) != 3 {
		t.Errorf("expected 3 units (ds.a, ds.b, other.a), got %d", len(units))
	}
}

func TestGroupRowsMissingRequiredField(t *testing.T) {
	bad := row("orders_raw", "id", "analytics", "orders", "order_id")
	bad.TransformationRule = ""

	_, err := GroupRows([]MappingRow{bad})
	if err == nil {
		t.Fatal("expected validation error for missing transformation_rule")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Row != 1 {
		t.Errorf("expected error on row 1, got %d", verr.Row)
	}
}

func TestGroupRowsConflictingSourceIdentity(t *testing.T) {
	a := row("orders_raw", "id", "analytics", "orders", "order_id")
	b := row("payments_raw", "amount", "analytics", "orders", "paid_amount")

	_, err := GroupRows([]MappingRow{a, b})
	if err == nil {
		t.Fatal("expected validation error for conflicting source tables in one unit")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Row != 2 {
		t.Errorf("expected error on row 2, got %d", verr.Row)
	}
}

func TestUnitSourceRef(t *testing.T) {
	units, err := GroupRows([]MappingRow{row("orders_raw", "id", "analytics", "orders", "order_id")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	project, dataset, table := units[0].SourceRef()
	if project != "proj" || dataset != "raw" || table != "orders_raw" {
		t.Errorf("unexpected source ref %s.%s.%s", project, dataset, table)
	}
}
