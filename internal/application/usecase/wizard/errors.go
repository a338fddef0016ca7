package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrWrongStep is returned when an operation is invoked outside the wizard
// step it belongs to
var ErrWrongStep = errors.New("operation not valid for current step")

// ValidationError reports per-field input problems. The wizard state is
// unchanged when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps a ValidationError if err carries one
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
