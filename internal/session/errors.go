package session

import (
	"errors"
	"fmt"
)

// ErrStructureLoadFailed is matched by every *LoadError.
var ErrStructureLoadFailed = errors.New("structure load failed")

// LoadError reports a rejected or timed out structure load.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStructureLoadFailed, e.ID, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrStructureLoadFailed, e.Err}
}
