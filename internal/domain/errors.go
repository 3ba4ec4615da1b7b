package domain

import (
	"fmt"
	"strings"
)

// FieldError lists the fields that failed a single validation rule.
// It matches ErrValidation under errors.Is.
type FieldError struct {
	Fields []string
	Reason string
}

func (e *FieldError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s %s", e.Fields[0], e.Reason)
	}
	return fmt.Sprintf("%s %s", strings.Join(e.Fields, ", "), e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}
