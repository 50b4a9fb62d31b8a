package argv

import "github.com/Norgate-AV/wintools/internal/apperr"

// Table maps accepted flag spellings to a canonical key. Lookups use
// ASCII case-insensitive equality and never match partial names.
type Table[K comparable] struct {
	entries []tableEntry[K]
}

type tableEntry[K comparable] struct {
	key   K
	names []string
}

// NewTable creates an empty synonym table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{}
}

// Add registers names as spellings of key. The first name is the canonical
// spelling reported by Canonical.
func (t *Table[K]) Add(key K, names ...string) *Table[K] {
	t.entries = append(t.entries, tableEntry[K]{key: key, names: names})
	return t
}

// Lookup returns the key whose synonyms contain name.
func (t *Table[K]) Lookup(name string) (K, bool) {
	for _, e := range t.entries {
		for _, n := range e.names {
			if EqualFold(n, name) {
				return e.key, true
			}
		}
	}

	var zero K
	return zero, false
}

// Canonical returns the first registered spelling for key.
func (t *Table[K]) Canonical(key K) string {
	for _, e := range t.entries {
		if e.key == key && len(e.names) > 0 {
			return e.names[0]
		}
	}

	return ""
}

// Synonyms returns every spelling registered for key.
func (t *Table[K]) Synonyms(key K) []string {
	var out []string
	for _, e := range t.entries {
		if e.key == key {
			out = append(out, e.names...)
		}
	}

	return out
}

// ParseMode resolves the leading mode flag of a single-mode utility such as
// clipboard-text. The mode must carry a prefix and match table exactly.
func ParseMode[K comparable](table *Table[K], raw string) (K, error) {
	var zero K

	tok := Classify(raw, 1)
	if err := tok.CheckFlag(); err != nil {
		return zero, err
	}

	mode, ok := table.Lookup(tok.Name)
	if !ok {
		return zero, apperr.AtToken(apperr.KindArgument, tok.Raw, tok.Index, "unknown mode")
	}

	return mode, nil
}
