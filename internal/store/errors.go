package store

import "errors"

var (
	// ErrNotExist is returned by a Backend when no document has been written yet.
	ErrNotExist = errors.New("document does not exist")
	// ErrIO wraps failures to read or write the backing location.
	ErrIO = errors.New("storage i/o error")
	// ErrParse wraps documents that cannot be decoded or encoded.
	ErrParse = errors.New("malformed document")
)
