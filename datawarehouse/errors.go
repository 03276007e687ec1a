package datawarehouse

import "errors"

var (
	// ErrConstruction reports a malformed attribute combination, detected when
	// the entity is built or attached.
	ErrConstruction = errors.New("construction error")
	// ErrInvalidState reports a completion call the run's state does not allow.
	ErrInvalidState = errors.New("invalid state")
	// ErrSchemaViolation reports a document missing a required relationship.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrFormat reports a timezone or timestamp that cannot be rendered.
	ErrFormat = errors.New("format error")
	// ErrIO reports a destination that could not be written.
	ErrIO = errors.New("io error")
)

// Must panics if err is non-nil. It keeps eager literals readable in samples
// and tests.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
