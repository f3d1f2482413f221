package scores

import "fmt"

// MalformedError reports a stored document that cannot be decoded.
type MalformedError struct {
	Name string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed score document %q: %v", e.Name, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
