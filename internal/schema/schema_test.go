package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findColumn(t *testing.T, table TableSchema, name string) Column {
	t.Helper()
	for _, c := range table.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found in table %q", name, table.Name)
	return Column{}
}

func findTable(t *testing.T, schemas []TableSchema, name string) TableSchema {
	t.Helper()
	for _, s := range schemas {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("table %q not derived", name)
	return TableSchema{}
}

func TestDeriveDefaultRegistry(t *testing.T) {
	schemas := Derive(DefaultRegistry())
	require.Len(t, schemas, 6)

	// Every table carries the auto primary key first.
	for _, s := range schemas {
		require.NotEmpty(t, s.Columns)
		assert.Equal(t, "id", s.Columns[0].Name)
	}

	item := findTable(t, schemas, "item")
	assert.True(t, findColumn(t, item, "quantity").Relation)
	assert.True(t, findColumn(t, item, "sources").Relation)
	assert.True(t, findColumn(t, item, "modifiers").Relation)
	assert.False(t, findColumn(t, item, "display_name").Relation)
	assert.Equal(t, "TEXT", findColumn(t, item, "sources").SQLType)
	assert.Equal(t, "INTEGER", findColumn(t, item, "price").SQLType)
	assert.Equal(t, "INTEGER", findColumn(t, item, "is_unique").SQLType)

	modifier := findTable(t, schemas, "modifier")
	assert.True(t, findColumn(t, modifier, "quantity").Relation)
	assert.True(t, findColumn(t, modifier, "sources").Relation)

	dropsource := findTable(t, schemas, "dropsource")
	assert.Equal(t, "REAL", findColumn(t, dropsource, "decimal_rate").SQLType)
}

// Processing order is load-bearing: a composite derived before the entity it
// references must NOT get a relation column. This guards the registry order
// against regressions.
func TestDeriveOrderSensitivity(t *testing.T) {
	outOfOrder := []EntityDef{
		{Name: "modifier", Fields: []FieldDef{{Name: "quantity", Type: "quantity"}}},
		{Name: "quantity", Fields: []FieldDef{{Name: "min", Type: TypeInt}, {Name: "max", Type: TypeInt}}},
	}
	schemas := Derive(outOfOrder)
	modifier := findTable(t, schemas, "modifier")
	col := findColumn(t, modifier, "quantity")
	assert.False(t, col.Relation, "out-of-order reference degrades to a plain column")

	inOrder := []EntityDef{outOfOrder[1], outOfOrder[0]}
	schemas = Derive(inOrder)
	modifier = findTable(t, schemas, "modifier")
	col = findColumn(t, modifier, "quantity")
	assert.True(t, col.Relation, "in-order reference must stay an opaque relation column")
}

func TestCreateStatement(t *testing.T) {
	schemas := Derive([]EntityDef{
		{Name: "Quantity", Fields: []FieldDef{{Name: "min", Type: TypeInt}, {Name: "max", Type: TypeInt}}},
	})
	require.Len(t, schemas, 1)
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS quantity (id INTEGER PRIMARY KEY AUTOINCREMENT, min INTEGER, max INTEGER)",
		schemas[0].CreateStatement())
}

func TestDefaultRegistryOrder(t *testing.T) {
	defs := DefaultRegistry()
	position := make(map[string]int, len(defs))
	for i, def := range defs {
		position[def.Name] = i
	}

	// Each relation-typed field must reference an earlier entity.
	for _, def := range defs {
		for _, field := range def.Fields {
			if ref, ok := position[field.Type]; ok {
				assert.Less(t, ref, position[def.Name],
					"%s.%s references %s which must be registered earlier", def.Name, field.Name, field.Type)
			}
		}
	}
}
