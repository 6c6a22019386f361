package dwalk

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-json-experiment/json/jsontext"
)

// DirectiveFunc decodes the value following a {"$name": ...} key into a
// Value, typically one of the extended kinds. The decoder is positioned at
// the value; implementations must consume exactly that value.
type DirectiveFunc func(dec *jsontext.Decoder) (Value, error)

// Registry resolves directive names encountered during tree building. Names
// are either bare ("date") or namespaced with a single dot ("geo.point");
// namespaced directives also resolve by their short name when that is
// unambiguous.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]DirectiveFunc
	short   map[string][]string // short name -> fully qualified candidates
}

func newRegistry() *Registry {
	return &Registry{
		entries: make(map[string]DirectiveFunc),
		short:   make(map[string][]string),
	}
}

// DefaultRegistry carries the canonical directives and is used by Parse when
// no registry is supplied.
var DefaultRegistry = func() *Registry {
	r, err := NewRegistry(Canonical())
	if err != nil {
		panic(err)
	}
	return r
}()

func validateName(name string) error {
	if strings.Count(name, ".") > 1 {
		return fmt.Errorf("directive %q: invalid namespace (at most one dot)", name)
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("directive %q: invalid namespace (empty segment)", name)
	}
	return nil
}

// Register binds fn to name. Duplicate names and malformed namespaces are
// rejected.
func (r *Registry) Register(name string, fn DirectiveFunc) error {
	if err := validateName(name); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("directive %q: nil function", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("directive %q already registered", name)
	}
	r.entries[name] = fn
	if _, shortName, ok := strings.Cut(name, "."); ok {
		r.short[shortName] = append(r.short[shortName], name)
	}
	return nil
}

// Exec resolves name and runs its directive against dec. A fully qualified
// match wins over short-name resolution; an ambiguous short name is an error
// listing the candidates.
func (r *Registry) Exec(name string, dec *jsontext.Decoder) (Value, error) {
	r.mu.RLock()
	fn, ok := r.entries[name]
	full := name
	var candidates []string
	if !ok {
		candidates = slices.Clone(r.short[name])
		if len(candidates) == 1 {
			full = candidates[0]
			fn, ok = r.entries[full]
		}
	}
	r.mu.RUnlock()

	if !ok {
		if len(candidates) > 1 {
			slices.Sort(candidates)
			return Value{}, fmt.Errorf("directive %q ambiguous between %s", name, strings.Join(candidates, ", "))
		}
		return Value{}, fmt.Errorf("directive %q not registered", name)
	}

	val, err := fn(dec)
	if err != nil {
		return Value{}, fmt.Errorf("directive %q execution: %w", full, err)
	}
	return val, nil
}
