// Package schema derives storage-table layouts from an explicit registry of
// entity definitions. Fields whose type names an entity registered earlier
// become opaque encoded columns (a serialized copy of the related value, no
// foreign key). That is deliberate: the store supports point lookups only,
// never joins, and lookups decode the copy back into the nested value.
package schema

import (
	"fmt"
	"strings"
)

// Semantic field types. Anything else is treated as an entity-type name.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeString = "string"
)

// FieldDef declares one entity field. Type is either a semantic type above
// or the name of another registered entity.
type FieldDef struct {
	Name string
	Type string
}

// EntityDef declares an entity and its ordered fields.
type EntityDef struct {
	Name   string
	Fields []FieldDef
}

// Column is one derived storage column.
type Column struct {
	Name     string
	SQLType  string
	Relation bool
}

// TableSchema is the derived layout for one entity. The table name is the
// lowercased entity name.
type TableSchema struct {
	Name    string
	Columns []Column
}

// Derive produces one table schema per definition, in input order. A field
// referencing an entity that appears EARLIER in defs is downgraded to an
// opaque TEXT relation column. Derive does not reorder its input: leaf
// entities must come before the composites referencing them, or the
// reference silently degrades to a plain column. DefaultRegistry satisfies
// that ordering.
func Derive(defs []EntityDef) []TableSchema {
	registered := make(map[string]bool, len(defs))
	schemas := make([]TableSchema, 0, len(defs))

	for _, def := range defs {
		table := TableSchema{Name: strings.ToLower(def.Name)}
		table.Columns = append(table.Columns, Column{Name: "id", SQLType: "INTEGER PRIMARY KEY AUTOINCREMENT"})
		for _, field := range def.Fields {
			if registered[strings.ToLower(field.Type)] {
				table.Columns = append(table.Columns, Column{Name: field.Name, SQLType: "TEXT", Relation: true})
				continue
			}
			table.Columns = append(table.Columns, Column{Name: field.Name, SQLType: sqlType(field.Type)})
		}
		registered[strings.ToLower(def.Name)] = true
		schemas = append(schemas, table)
	}
	return schemas
}

func sqlType(semantic string) string {
	switch semantic {
	case TypeInt, TypeBool:
		return "INTEGER"
	case TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// CreateStatement renders the idempotent DDL for the table.
func (t TableSchema) CreateStatement() string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", c.Name, c.SQLType)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(cols, ", "))
}

// DefaultRegistry lists every persisted entity in dependency order: leaf
// types first, composites after the entities they embed. The order is
// load-bearing for Derive.
func DefaultRegistry() []EntityDef {
	return []EntityDef{
		{
			Name: "initparams",
			Fields: []FieldDef{
				{Name: "player_name", Type: TypeString},
				{Name: "tier_4_luck", Type: TypeBool},
				{Name: "orlando", Type: TypeBool},
				{Name: "rebuild", Type: TypeBool},
			},
		},
		{
			Name: "statistics",
			Fields: []FieldDef{
				{Name: "player_name", Type: TypeString},
				{Name: "opened_caskets", Type: TypeInt},
				{Name: "uniques", Type: TypeInt},
				{Name: "broadcasts", Type: TypeInt},
			},
		},
		{
			Name: "quantity",
			Fields: []FieldDef{
				{Name: "min", Type: TypeInt},
				{Name: "max", Type: TypeInt},
			},
		},
		{
			Name: "dropsource",
			Fields: []FieldDef{
				{Name: "name", Type: TypeString},
				{Name: "rate", Type: TypeString},
				{Name: "decimal_rate", Type: TypeFloat},
			},
		},
		{
			Name: "modifier",
			Fields: []FieldDef{
				{Name: "quantity", Type: "quantity"},
				{Name: "sources", Type: "dropsource"},
			},
		},
		{
			Name: "item",
			Fields: []FieldDef{
				{Name: "display_name", Type: TypeString},
				{Name: "internal_name", Type: TypeString},
				{Name: "quantity", Type: "quantity"},
				{Name: "is_unique", Type: TypeBool},
				{Name: "is_broadcast", Type: TypeBool},
				{Name: "noted", Type: TypeBool},
				{Name: "sources", Type: "dropsource"},
				{Name: "droptable", Type: TypeString},
				{Name: "price", Type: TypeInt},
				{Name: "modifiers", Type: "modifier"},
				{Name: "image_id", Type: TypeInt},
				{Name: "category", Type: TypeString},
			},
		},
	}
}
