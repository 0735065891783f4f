package fcall

import (
	"fmt"
	"sort"

	"github.com/pgext-dev/pgext-sdk/datum"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Registry maps export names (the symbols the backend resolves) to wrapped
// functions. Registration happens at init time on the loader thread; lookups
// happen on the backend's call thread. Neither is concurrent with the other,
// so the map is unlocked.
type Registry struct {
	exports map[string]*Export
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{exports: make(map[string]*Export)}
}

// Register wraps fn under sig and binds it to name.
func (r *Registry) Register(name string, sig Signature, fn any) error {
	if name == "" {
		return fmt.Errorf("fcall: export name must not be empty")
	}
	if _, dup := r.exports[name]; dup {
		return fmt.Errorf("fcall: %q is already registered", name)
	}
	e, err := NewExport(sig, fn)
	if err != nil {
		return fmt.Errorf("fcall: registering %q: %w", name, err)
	}
	r.exports[name] = e
	return nil
}

// Lookup returns the export bound to name.
func (r *Registry) Lookup(name string) (*Export, bool) {
	e, ok := r.exports[name]
	return e, ok
}

// Names returns the registered export names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exports))
	for name := range r.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes one backend call to the named export. An unknown name is a
// configuration fault: the module's DDL points at a symbol that was never
// registered.
func (r *Registry) Dispatch(name string, ci CallInfo) datum.Datum {
	e, ok := r.exports[name]
	if !ok {
		pgsys.Current().Report(pgsys.LevelFatal,
			fmt.Sprintf("no extension function registered as %q", name))
		return datum.Null(pgsys.InvalidOid)
	}
	return e.Call(ci)
}

var defaultRegistry = NewRegistry()

// Register binds fn to name in the default registry.
func Register(name string, sig Signature, fn any) error {
	return defaultRegistry.Register(name, sig, fn)
}

// MustRegister is Register for init functions: it panics on registration
// errors, which surface when the module is loaded rather than mid-query.
func MustRegister(name string, sig Signature, fn any) {
	if err := Register(name, sig, fn); err != nil {
		panic(err)
	}
}

// Dispatch routes a backend call through the default registry.
func Dispatch(name string, ci CallInfo) datum.Datum {
	return defaultRegistry.Dispatch(name, ci)
}

// Default returns the default registry, for tooling that enumerates exports.
func Default() *Registry {
	return defaultRegistry
}
