package persist

import "fmt"

// PersistenceError wraps a failed load or save. A failed load at
// startup degrades to defaults; a failed save leaves the previously
// persisted snapshot intact.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
