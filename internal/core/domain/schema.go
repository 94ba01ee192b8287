package domain

import "errors"

var ErrSchemaUnavailable = errors.New("analytics database not configured")

// SchemaColumn describes one column of an introspected table.
type SchemaColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// ForeignKey describes a foreign key constraint on an introspected table.
type ForeignKey struct {
	Name              string   `json:"name"`
	Columns           []string `json:"columns"`
	ReferencedSchema  string   `json:"referenced_schema"`
	ReferencedTable   string   `json:"referenced_table"`
	ReferencedColumns []string `json:"referenced_columns"`
}

// SchemaTable is the introspection result for a single analytics table,
// used by the natural-language visualization frontend to describe the
// database to the workflow engine.
type SchemaTable struct {
	Schema      string         `json:"schema"`
	Table       string         `json:"table"`
	Columns     []SchemaColumn `json:"columns"`
	PrimaryKey  []string       `json:"primary_key"`
	ForeignKeys []ForeignKey   `json:"foreign_keys"`
}
