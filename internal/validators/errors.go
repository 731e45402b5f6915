package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Violations aggregates every rule a single payload broke. It implements
// the error interface so it can travel through ordinary error returns;
// callers unwrap it with errors.As to reach the individual messages.
type Violations struct {
	Rules []string
}

// Add records one broken rule.
func (v *Violations) Add(rule string) {
	v.Rules = append(v.Rules, rule)
}

// Any reports whether at least one rule was broken.
func (v *Violations) Any() bool {
	return len(v.Rules) > 0
}

// Error implements the error interface.
func (v *Violations) Error() string {
	return "validation failed: " + strings.Join(v.Rules, "; ")
}
