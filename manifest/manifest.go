// Package manifest describes an extension module for tooling: its identity
// and the SQL surface of its exported functions. The generator CLI turns a
// manifest into CREATE FUNCTION statements and a control file, and the
// registry check verifies that the declared SQL surface matches what the Go
// module actually registered.
package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pgext-dev/pgext-sdk/fcall"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Manifest declares an extension module.
type Manifest struct {
	Name        string     `json:"name" yaml:"name" validate:"required,sql_ident"`
	Version     string     `json:"version" yaml:"version" validate:"required"`
	Comment     string     `json:"comment,omitempty" yaml:"comment"`
	Relocatable bool       `json:"relocatable,omitempty" yaml:"relocatable"`
	Schema      string     `json:"schema,omitempty" yaml:"schema" validate:"omitempty,sql_ident"`
	Functions   []Function `json:"functions" yaml:"functions" validate:"required,min=1,dive"`
}

// Function declares one exported function.
type Function struct {
	// Name is the SQL-level function name.
	Name string `json:"name" yaml:"name" validate:"required,sql_ident"`
	// Symbol is the C symbol the backend resolves; defaults to "pg_" + Name,
	// the wrapper naming convention used by the cgo glue.
	Symbol string `json:"symbol,omitempty" yaml:"symbol" validate:"omitempty,sql_ident"`
	// Args are SQL type names from the supported catalog subset.
	Args []string `json:"args" yaml:"args" validate:"dive,required"`
	// Returns is the SQL result type.
	Returns string `json:"returns" yaml:"returns" validate:"required"`
	// Strict marks the function STRICT: any NULL argument yields a NULL
	// result without invoking the body.
	Strict bool `json:"strict,omitempty" yaml:"strict"`
	// Volatility is one of immutable, stable, volatile (default volatile).
	Volatility string `json:"volatility,omitempty" yaml:"volatility" validate:"omitempty,oneof=immutable stable volatile"`
}

// validate is a package-level singleton; constructing a validator per call
// is expensive.
var validate = newValidator()

var sqlIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	// Identifiers are kept to the unquoted-lowercase subset so emitted DDL
	// needs no quoting.
	if err := v.RegisterValidation("sql_ident", func(fl validator.FieldLevel) bool {
		return sqlIdent.MatchString(fl.Field().String())
	}); err != nil {
		panic("manifest: registering sql_ident validation: " + err.Error())
	}
	return v
}

// ExportSymbol returns the C symbol the backend resolves for f.
func (f Function) ExportSymbol() string {
	if f.Symbol != "" {
		return f.Symbol
	}
	return "pg_" + f.Name
}

// Signature maps the declared SQL types onto a call signature.
func (f Function) Signature() (fcall.Signature, error) {
	sig := fcall.Signature{Strict: f.Strict}
	for i, arg := range f.Args {
		oid, ok := pgsys.OidOfSQL(strings.ToLower(arg))
		if !ok {
			return fcall.Signature{}, fmt.Errorf("function %s: argument %d has unsupported SQL type %q",
				f.Name, i, arg)
		}
		sig.Args = append(sig.Args, oid)
	}
	ret, ok := pgsys.OidOfSQL(strings.ToLower(f.Returns))
	if !ok {
		return fcall.Signature{}, fmt.Errorf("function %s: unsupported SQL return type %q",
			f.Name, f.Returns)
	}
	sig.Ret = ret
	return sig, nil
}

// Validate checks structural constraints and that every declared SQL type is
// in the supported catalog subset.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}
	seen := make(map[string]bool, len(m.Functions))
	for _, f := range m.Functions {
		if _, err := f.Signature(); err != nil {
			return err
		}
		if seen[f.Name] {
			return fmt.Errorf("function %s is declared twice", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// CheckRegistry verifies that every declared function has a registered
// export under its SQL name (the dispatch key the cgo glue routes through)
// with the identical signature, so the emitted DDL cannot drift from the
// code.
func (m *Manifest) CheckRegistry(reg *fcall.Registry) error {
	for _, f := range m.Functions {
		want, err := f.Signature()
		if err != nil {
			return err
		}
		e, ok := reg.Lookup(f.Name)
		if !ok {
			return fmt.Errorf("function %s: no export registered under that name", f.Name)
		}
		got := e.Signature()
		if got.Strict != want.Strict || got.Ret != want.Ret || len(got.Args) != len(want.Args) {
			return fmt.Errorf("function %s: registered signature does not match manifest", f.Name)
		}
		for i := range got.Args {
			if got.Args[i] != want.Args[i] {
				return fmt.Errorf("function %s: argument %d registered as %s, declared %s",
					f.Name, i, got.Args[i], want.Args[i])
			}
		}
	}
	return nil
}
