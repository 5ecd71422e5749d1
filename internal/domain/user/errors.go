package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameAlreadyUsed = errors.New("a user with that username already exists")
	ErrEmailAlreadyUsed    = errors.New("a user with that email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
