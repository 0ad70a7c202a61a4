package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrCannotDeleteSelf  = errors.New("cannot delete own account")

	// Record related errors
	ErrPatientNotFound = errors.New("patient not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
