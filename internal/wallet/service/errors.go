package service

import "errors"

var (
	// ErrAccountNotFound is returned for an account that was never opened.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists is returned when opening an account twice.
	ErrAccountExists = errors.New("account already open")
	// ErrInvalidAccount reports an account configuration that cannot be followed.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrForeignAddress is returned for an address the account does not own.
	ErrForeignAddress = errors.New("address not owned by account")
	// ErrClosed is returned once the service is closed.
	ErrClosed = errors.New("wallet service closed")
)
