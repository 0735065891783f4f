package ddl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgext-dev/pgext-sdk/ddl"
	"github.com/pgext-dev/pgext-sdk/manifest"
)

func TestStatements(t *testing.T) {
	m := &manifest.Manifest{
		Name:    "adding",
		Version: "0.1.0",
		Functions: []manifest.Function{
			{
				Name:       "add_together",
				Args:       []string{"int4", "integer"},
				Returns:    "integer",
				Strict:     true,
				Volatility: "immutable",
			},
		},
	}

	got, err := ddl.Statements(m)
	require.NoError(t, err)
	assert.Equal(t, `CREATE OR REPLACE FUNCTION add_together(integer, integer)
RETURNS integer
AS '$libdir/adding', 'pg_add_together'
LANGUAGE C STRICT IMMUTABLE;
`, got)
}

func TestStatementsMultipleFunctions(t *testing.T) {
	m := &manifest.Manifest{
		Name:    "strings",
		Version: "0.2.0",
		Functions: []manifest.Function{
			{Name: "concat_text", Args: []string{"text", "text"}, Returns: "text", Strict: true},
			{Name: "first_notnull", Args: []string{"text", "text"}, Returns: "text", Volatility: "stable"},
		},
	}

	got, err := ddl.Statements(m)
	require.NoError(t, err)
	assert.Contains(t, got, "LANGUAGE C STRICT;\n")
	assert.Contains(t, got, "LANGUAGE C STABLE;\n")
	// Statements are separated by a blank line, in declaration order.
	assert.Regexp(t, `(?s)concat_text.*\n\nCREATE OR REPLACE FUNCTION first_notnull`, got)
}

func TestStatementsRejectsInvalidManifest(t *testing.T) {
	m := &manifest.Manifest{Name: "bad"}
	_, err := ddl.Statements(m)
	require.Error(t, err)
}

func TestControlFile(t *testing.T) {
	m := &manifest.Manifest{
		Name:        "adding",
		Version:     "0.1.0",
		Comment:     "Erin's adding extension",
		Relocatable: true,
		Schema:      "util",
		Functions: []manifest.Function{
			{Name: "add_together", Args: []string{"integer", "integer"}, Returns: "integer", Strict: true},
		},
	}

	got, err := ddl.ControlFile(m)
	require.NoError(t, err)
	assert.Equal(t, `# adding extension
comment = 'Erin''s adding extension'
default_version = '0.1.0'
module_pathname = '$libdir/adding'
relocatable = true
schema = 'util'
`, got)
}

func TestControlFileOmitsEmptyFields(t *testing.T) {
	m := &manifest.Manifest{
		Name:    "adding",
		Version: "0.1.0",
		Functions: []manifest.Function{
			{Name: "add_together", Args: []string{"integer", "integer"}, Returns: "integer"},
		},
	}

	got, err := ddl.ControlFile(m)
	require.NoError(t, err)
	assert.NotContains(t, got, "comment")
	assert.NotContains(t, got, "schema")
	assert.Contains(t, got, "relocatable = false\n")
}
