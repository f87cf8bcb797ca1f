package agencia

import "errors"

var (
	// ErrNotFound is returned when a slug or upload name does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugExists is returned by Create when the generated slug is
	// already present in the index.
	ErrSlugExists = errors.New("slug already exists")

	// ErrInconsistent is returned when the index references a slug whose
	// document file is missing. It is distinct from ErrNotFound so that
	// "never existed" and "corrupted" stay distinguishable.
	ErrInconsistent = errors.New("index and documents are inconsistent")
)

// ValidationError reports client input that was rejected before any
// storage access. It maps to a 400 response, never to a server fault.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}
