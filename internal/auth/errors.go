package auth

import "errors"

var (
	ErrFieldsRequired     = errors.New("Username, email and password are required")
	ErrDuplicateIdentity  = errors.New("A user with the given username or email is already registered")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)
