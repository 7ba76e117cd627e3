package postgres

import (
	"strings"
	"testing"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("dev_")

	want := map[string]string{
		"cases":            tables.Cases,
		"arguments":        tables.Arguments,
		"sources":          tables.Sources,
		"argument_sources": tables.ArgumentSources,
		"ai_analyses":      tables.Analyses,
		"profiles":         tables.Profiles,
	}
	for name, got := range want {
		if got != "dev_"+name {
			t.Errorf("table %s = %q, want %q", name, got, "dev_"+name)
		}
	}
}

func TestSchemaStatements_UsePrefix(t *testing.T) {
	tables := NewTableNames("test_")
	stmts := SchemaStatements(tables, "test_")

	for _, stmt := range stmts[1:] {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement is not idempotent: %s", stmt)
		}
		if !strings.Contains(stmt, "test_") {
			t.Errorf("statement ignores the table prefix: %s", stmt)
		}
	}
}

func TestSchemaStatements_ParentsBeforeChildren(t *testing.T) {
	tables := NewTableNames("")
	stmts := SchemaStatements(tables, "")

	created := map[string]int{}
	for i, stmt := range stmts {
		for _, table := range DropOrder(tables) {
			if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" (") {
				created[table] = i
			}
		}
	}

	order := [][2]string{
		{tables.Cases, tables.Arguments},
		{tables.Cases, tables.Sources},
		{tables.Arguments, tables.ArgumentSources},
		{tables.Sources, tables.ArgumentSources},
		{tables.Arguments, tables.Analyses},
	}
	for _, pair := range order {
		if created[pair[0]] >= created[pair[1]] {
			t.Errorf("%s must be created before %s", pair[0], pair[1])
		}
	}
}

func TestDropOrder_ChildrenFirst(t *testing.T) {
	tables := NewTableNames("")
	order := DropOrder(tables)

	position := map[string]int{}
	for i, table := range order {
		position[table] = i
	}
	if len(position) != 6 {
		t.Fatalf("DropOrder lists %d tables, want 6", len(position))
	}
	if position[tables.Analyses] > position[tables.Arguments] {
		t.Error("analyses must be dropped before arguments")
	}
	if position[tables.Arguments] > position[tables.Cases] {
		t.Error("arguments must be dropped before cases")
	}
}
