package catalog

import "errors"

var (
	// ErrNotFound means a lookup matched zero or more than one record.
	ErrNotFound = errors.New("no unique matching record")
	// ErrUnauthorized means the credentials were rejected.
	ErrUnauthorized = errors.New("credentials rejected")
	// ErrValidation means the catalog rejected a create request.
	ErrValidation = errors.New("record rejected by catalog")
)
