package aztemp

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrNotFound - the resource or item does not exist
	ErrNotFound = Error("resource does not exist")

	// ErrDisposed - the fixture has already been disposed and can no longer be used
	ErrDisposed = Error("fixture has already been disposed")
)
