package service

import "errors"

var (
	// ErrNotAuthenticated covers every expected token failure: missing, malformed,
	// expired, bad signature, or a user that no longer exists.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden means the caller is authenticated but may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotOwner is the ownership flavour of ErrForbidden.
	ErrNotOwner = errors.New("not authorized to modify event")

	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrEmailTaken         = errors.New("email already taken")

	ErrDisciplineNotFound = errors.New("sport discipline not found")
	ErrDisciplineExists   = errors.New("sport discipline already exists")

	ErrEventNotFound = errors.New("event not found")

	// ErrEventVanished is returned when an event passed the ownership check but
	// was gone by the time the mutation reached the store.
	ErrEventVanished = errors.New("event no longer exists")
)
