package model

import "fmt"

// ValidationError indicates a mutation's input violates an entity
// invariant. The store rejects the mutation and leaves state unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
