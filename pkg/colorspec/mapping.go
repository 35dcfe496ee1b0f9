package colorspec

import (
	"sort"
	"strings"
)

// Mapping binds recipe color-names to color tokens. It is supplied fresh
// at each render invocation, owned by the caller, and read-only to the
// renderer.
type Mapping map[string]Token

// Lookup returns the token bound to name. An absent name returns the
// null sentinel, which resolves to NoRecolor: layers without a mapping
// entry are composited as-is (rich-color passthrough layers).
func (m Mapping) Lookup(name string) Token {
	if m == nil {
		return None()
	}
	tok, ok := m[name]
	if !ok {
		return None()
	}
	return tok
}

// Fingerprint returns a stable textual digest input for the mapping,
// suitable for cache keying. Entries are sorted by name so two equal
// mappings always fingerprint identically.
func (m Mapping) Fingerprint() string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(m[name].String())
		b.WriteByte(';')
	}
	return b.String()
}

// MappingFromValues converts a map of dynamically-typed values (from a
// decoded TOML or JSON colors file) into a Mapping.
func MappingFromValues(values map[string]any) (Mapping, error) {
	m := make(Mapping, len(values))
	for name, v := range values {
		tok, err := FromValue(v)
		if err != nil {
			return nil, err
		}
		m[name] = tok
	}
	return m, nil
}
