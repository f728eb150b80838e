// =============================================================================
// ReportsImport - Usage Errors
// =============================================================================
//
// A usage error means the command line itself is wrong: a required argument
// is missing, a token is malformed, or the input extension matches no enabled
// format. The command layer answers a usage error with the help text instead
// of an error message.
//
// =============================================================================

package usage

import (
	"errors"
	"fmt"
)

// Error reports a malformed or incomplete invocation.
type Error struct {
	// Reason describes what is wrong with the invocation.
	Reason string

	// Explain asks the command layer to print Reason above the usage text.
	// Most usage errors are self-evident from the usage text alone.
	Explain bool
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return "invalid usage"
	}
	return "invalid usage: " + e.Reason
}

// Errorf returns a usage error whose reason is not printed; the usage text
// alone answers it.
func Errorf(format string, args ...any) error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Explainf returns a usage error whose reason is printed with the usage text.
func Explainf(format string, args ...any) error {
	return &Error{Reason: fmt.Sprintf(format, args...), Explain: true}
}

// As reports whether err is, or wraps, a usage error and returns it.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
