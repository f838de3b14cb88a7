package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInClause(t *testing.T) {
	ph, args := InClause([]string{"a", "b", "c"})
	if ph != "?,?,?" {
		t.Fatalf("placeholders = %q", ph)
	}
	if len(args) != 3 || args[2] != "c" {
		t.Fatalf("args = %v", args)
	}
}

func TestUniqueDropsBlanksAndDuplicates(t *testing.T) {
	got := Unique([]string{"v1", "", "v2", "v1", "v3"})
	want := []string{"v1", "v2", "v3"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestNullIfEmpty(t *testing.T) {
	blank := "   "
	if NullIfEmpty(&blank) != nil {
		t.Fatalf("blank string should be NULL")
	}
	if NullIfEmpty(nil) != nil {
		t.Fatalf("nil should be NULL")
	}
	v := " note "
	if NullIfEmpty(&v) != "note" {
		t.Fatalf("value should be trimmed")
	}
}

func TestHasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("trips").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("trips"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if !HasTable(context.Background(), db, "trips") {
		t.Fatalf("trips should exist")
	}
	if HasTable(context.Background(), db, "missing") {
		t.Fatalf("missing table reported as present")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaCreatesOnlyMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	present := map[string]bool{"vehicles": true, "drivers": true, "clients": true}
	for _, tbl := range []string{"vehicles", "drivers", "clients", "trips", "expenses"} {
		rows := sqlmock.NewRows([]string{"table_name"})
		if present[tbl] {
			rows.AddRow(tbl)
		}
		mock.ExpectQuery(`FROM information_schema.tables`).WithArgs(tbl).WillReturnRows(rows)
		if !present[tbl] {
			mock.ExpectExec(`CREATE TABLE ` + tbl).WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
