package opencc

import "errors"

// Sentinel errors returned by dictionary loading and configuration.
var (
	// ErrNotFound is returned when a dictionary file, configuration or
	// bundled resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorruptDictionary is returned when a compiled dictionary cannot be
	// decoded, e.g. a truncated cache file or a blob of a foreign format.
	ErrCorruptDictionary = errors.New("corrupt compiled dictionary")

	// ErrInvalidConfig is returned when a configuration lacks a required field.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedDictType is returned for unknown dictionary types.
	ErrUnsupportedDictType = errors.New("unsupported dictionary type")
)
