// =============================================================================
// ReportsImport - Argument Parser
// =============================================================================
//
// Command-line tokens have the shape "key:value", for example:
//
//   /in:C:\reports\sales.rpt /out:sales.xml /crystal:UnrecognizedFunctionBehavior=Ignore
//
// Only the first ':' separates the key from the value, so values may contain
// drive letters and further colons. Keys are case-insensitive.
//
// A value may itself carry sub-arguments, "sub1=val1;sub2=val2", which are
// extracted on demand with Map.SubArgs.
//
// =============================================================================

package args

import (
	"strings"

	"github.com/ginjaninja78/reports-import/internal/usage"
)

// Well-known argument keys.
const (
	KeyIn      = "/in"
	KeyOut     = "/out"
	KeyCrystal = "/crystal"
)

// minTokens is the smallest valid invocation: /in and /out.
const minTokens = 2

// =============================================================================
// ARGUMENT MAP
// =============================================================================

// Map is an immutable, case-insensitive mapping of argument keys to values.
type Map struct {
	values map[string]string

	// keys keeps the original spelling in command-line order.
	keys []string
}

// Parse builds a Map from the raw command-line tokens.
//
// PARAMETERS:
//   - tokens: The command-line tokens, without the program name.
//
// RETURNS:
//   - The parsed Map.
//   - A usage error if fewer than two tokens are given, a token has no ':',
//     or a key appears twice.
func Parse(tokens []string) (*Map, error) {
	if len(tokens) < minTokens {
		return nil, usage.Errorf("expected at least %d arguments, got %d", minTokens, len(tokens))
	}

	m := &Map{
		values: make(map[string]string, len(tokens)),
		keys:   make([]string, 0, len(tokens)),
	}

	for _, token := range tokens {
		key, value, ok := strings.Cut(token, ":")
		if !ok {
			return nil, usage.Errorf("argument %q is not of the form key:value", token)
		}

		folded := fold(key)
		if _, dup := m.values[folded]; dup {
			return nil, usage.Explainf("duplicate argument %q", key)
		}

		m.values[folded] = value
		m.keys = append(m.keys, key)
	}

	return m, nil
}

// Lookup returns the value stored under key.
func (m *Map) Lookup(key string) (string, bool) {
	value, ok := m.values[fold(key)]
	return value, ok
}

// Require returns the value stored under key or a usage error naming it.
func (m *Map) Require(key string) (string, error) {
	value, ok := m.Lookup(key)
	if !ok {
		return "", usage.Errorf("missing required argument %s", key)
	}
	return value, nil
}

// Keys returns the argument keys as spelled on the command line.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of arguments.
func (m *Map) Len() int {
	return len(m.values)
}

// SubArgs parses the value under key as "name=value;name2;..." sub-arguments.
// An absent key yields an empty SubArgs, not an error.
func (m *Map) SubArgs(key string) SubArgs {
	raw, ok := m.Lookup(key)
	if !ok {
		return SubArgs{}
	}
	return ParseSubArgs(raw)
}

func fold(key string) string {
	return strings.ToLower(key)
}
