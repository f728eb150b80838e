package args

import "strings"

// SubArgs is a case-insensitive set of nested options. An option may be
// present without a value ("B" in "A=1;B"), which is distinct from an empty
// value ("B=").
type SubArgs struct {
	entries map[string]subArg
}

type subArg struct {
	value    string
	hasValue bool
}

// ParseSubArgs splits raw on ';' and each piece on its first '='.
// Later duplicates overwrite earlier ones.
func ParseSubArgs(raw string) SubArgs {
	pieces := strings.Split(raw, ";")
	s := SubArgs{entries: make(map[string]subArg, len(pieces))}

	for _, piece := range pieces {
		name, value, hasValue := strings.Cut(piece, "=")
		s.entries[fold(name)] = subArg{value: value, hasValue: hasValue}
	}

	return s
}

// Lookup returns the value of the named option. ok is false when the option
// is missing or was given without '='.
func (s SubArgs) Lookup(name string) (value string, ok bool) {
	entry, found := s.entries[fold(name)]
	if !found || !entry.hasValue {
		return "", false
	}
	return entry.value, true
}

// Has reports whether the option was given, with or without a value.
func (s SubArgs) Has(name string) bool {
	_, found := s.entries[fold(name)]
	return found
}

// Len returns the number of options.
func (s SubArgs) Len() int {
	return len(s.entries)
}
