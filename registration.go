package dwalk

// Registration is a deferred directive registration. Packages that define
// directives expose values of this type so callers opt in explicitly instead
// of relying on import side-effects (init functions).
//
// For example, in a package "geo":
//
//	var Point = dwalk.NewDirective("geo.point", func(dec *jsontext.Decoder) (dwalk.Value, error) { ... })
//
// Usage:
//
//	r, _ := dwalk.NewRegistry(geo.Point /* , other directives... */)
//
// This keeps dependencies explicit and avoids global mutation at import time.
type Registration func(r *Registry) error

// NewDirective wraps fn into a Registration so that dependent packages can
// expose named directives (decoders for sentinel objects) without performing
// side effects at import time.
func NewDirective(name string, fn DirectiveFunc) Registration {
	return func(r *Registry) error {
		return r.Register(name, fn)
	}
}

// Group groups multiple registrations into one. This allows fluent usage
// without variadic expansion, e.g.:
//
//	dwalk.Apply(r, dwalk.Group(dwalk.IDDirective, dwalk.DateTimeDirective), custom)
func Group(regs ...Registration) Registration {
	return func(r *Registry) error { return Apply(r, regs...) }
}

// Apply applies one or more registrations to an existing registry. It stops
// at the first error and returns it:
//
//	dwalk.Apply(r, dwalk.IDDirective, dwalk.DateTimeDirective)
//	dwalk.Apply(r, dwalk.Canonical(), custom) // bundle form
func Apply(r *Registry, regs ...Registration) error {
	for _, reg := range regs {
		if err := reg(r); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry constructs a new registry and applies the provided
// registrations.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := newRegistry()
	if err := Apply(r, regs...); err != nil {
		return nil, err
	}
	return r, nil
}
