package crud

import "errors"

var (
	// ErrNotFound signals that a row does not exist at the repository
	// layer. Services translate it into an apperror with the resource
	// name filled in.
	ErrNotFound = errors.New("record not found")

	// ErrNoColumns signals an update with nothing to change after
	// sanitization
	ErrNoColumns = errors.New("no updatable columns in changes")
)
