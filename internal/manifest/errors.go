package manifest

import (
	"errors"
	"fmt"
)

// Error classes of a failed load
var (
	// ErrRead indicates the manifest file could not be opened or read
	ErrRead = errors.New("cannot read manifest")

	// ErrSyntax indicates the manifest content is malformed or violates the schema
	ErrSyntax = errors.New("syntax error in manifest")
)

// Validation causes, reported under ErrSyntax
var (
	// ErrMissingField indicates a required key is absent
	ErrMissingField = errors.New("missing required field")

	// ErrDuplicateArtifact indicates two artifacts share a name
	ErrDuplicateArtifact = errors.New("duplicate artifact name")

	// ErrEmptyName indicates an artifact declared with an empty name
	ErrEmptyName = errors.New("artifact name cannot be empty")
)

// LoadError is returned by every failed load. Kind is ErrRead or ErrSyntax.
type LoadError struct {
	Kind error
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v %q: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the error class and the underlying cause.
func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newLoadError(kind error, path string, err error) *LoadError {
	return &LoadError{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}

func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
