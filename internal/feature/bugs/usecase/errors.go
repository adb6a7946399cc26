// Package usecase implements the business logic for the bugs feature.
package usecase

import "errors"

var (
	// ErrBugNotFound is returned when no bug record matches the given ID.
	ErrBugNotFound = errors.New("bug not found")

	// ErrForbidden is returned when the caller is not the record's owner.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateBug is returned when a (device, scenario, owner) triple
	// would collide with an existing record, whether caught by the
	// pre-check or by the storage layer's unique constraint.
	ErrDuplicateBug = errors.New("this bug already exists for your device")
)
