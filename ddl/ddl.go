// Package ddl renders the SQL install script and the extension control file
// for a manifest, in the shape the backend's CREATE EXTENSION machinery
// expects.
package ddl

import (
	"fmt"
	"strings"

	"github.com/pgext-dev/pgext-sdk/manifest"
)

// Statements renders the CREATE FUNCTION statements for every function in
// the manifest, in declaration order.
func Statements(m *manifest.Manifest) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, f := range m.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		if err := writeFunction(&sb, m, f); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func writeFunction(sb *strings.Builder, m *manifest.Manifest, f manifest.Function) error {
	// Validate() already proved the type names resolve; normalize to the
	// canonical SQL spelling.
	sig, err := f.Signature()
	if err != nil {
		return err
	}

	args := make([]string, len(sig.Args))
	for i, oid := range sig.Args {
		name, _ := oid.SQLName()
		args[i] = name
	}
	ret, _ := sig.Ret.SQLName()

	fmt.Fprintf(sb, "CREATE OR REPLACE FUNCTION %s(%s)\n", f.Name, strings.Join(args, ", "))
	fmt.Fprintf(sb, "RETURNS %s\n", ret)
	fmt.Fprintf(sb, "AS '$libdir/%s', '%s'\n", m.Name, f.ExportSymbol())
	sb.WriteString("LANGUAGE C")
	if f.Strict {
		sb.WriteString(" STRICT")
	}
	switch f.Volatility {
	case "immutable":
		sb.WriteString(" IMMUTABLE")
	case "stable":
		sb.WriteString(" STABLE")
	}
	sb.WriteString(";\n")
	return nil
}

// ControlFile renders the <name>.control body.
func ControlFile(m *manifest.Manifest) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s extension\n", m.Name)
	if m.Comment != "" {
		fmt.Fprintf(&sb, "comment = '%s'\n", strings.ReplaceAll(m.Comment, "'", "''"))
	}
	fmt.Fprintf(&sb, "default_version = '%s'\n", m.Version)
	fmt.Fprintf(&sb, "module_pathname = '$libdir/%s'\n", m.Name)
	fmt.Fprintf(&sb, "relocatable = %t\n", m.Relocatable)
	if m.Schema != "" {
		fmt.Fprintf(&sb, "schema = '%s'\n", m.Schema)
	}
	return sb.String(), nil
}
