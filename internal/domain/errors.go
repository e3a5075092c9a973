package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Student errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgUserAlreadyExists = "user already exists"

	// Tree errors
	ErrMsgTreeNotFound       = "tree not found"
	ErrMsgTreeLimitReached   = "tree limit reached"
	ErrMsgInvalidMeasurement = "invalid measurement"

	// Store errors
	ErrMsgStoreRead  = "store read failure"
	ErrMsgStoreWrite = "store write failure"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Catalog errors
	ErrMsgInvalidCatalog = "invalid badge catalog"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Student errors
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	// Tree errors
	ErrTreeNotFound       = errors.New(ErrMsgTreeNotFound)
	ErrTreeLimitReached   = errors.New(ErrMsgTreeLimitReached)
	ErrInvalidMeasurement = errors.New(ErrMsgInvalidMeasurement)

	// ErrStoreRead means the tree records or the ledger could not be listed.
	// An evaluation run aborts on it and no partial metrics are computed.
	ErrStoreRead = errors.New(ErrMsgStoreRead)

	// ErrStoreWrite means a single badge award could not be persisted
	ErrStoreWrite = errors.New(ErrMsgStoreWrite)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)
)
