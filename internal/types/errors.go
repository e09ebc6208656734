package types

import "errors"

// Sentinel errors for quietrepr operations.
var (
	// ErrUnknownType indicates a type identifier has no registered definition.
	ErrUnknownType = errors.New("unknown record type")

	// ErrNoDefault indicates a type cannot produce a default instance.
	ErrNoDefault = errors.New("type has no default instance")

	// ErrDuplicateType indicates a type identifier was registered twice.
	ErrDuplicateType = errors.New("record type already registered")

	// ErrNotRewritable indicates an override names a type the registry cannot rewrite.
	ErrNotRewritable = errors.New("type is not rewritable")

	// ErrUnsupportedScheme indicates a database URL with an unknown scheme.
	ErrUnsupportedScheme = errors.New("unsupported database scheme")

	// ErrInvalidInput indicates a record source that is not a mapping.
	ErrInvalidInput = errors.New("input is not a record")
)
