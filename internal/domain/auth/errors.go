package auth

import "errors"

var (
	ErrUsernameAlreadyExists = errors.New("a user with that username already exists")
	ErrEmailAlreadyExists    = errors.New("a user with that email already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrRefreshTokenRequired  = errors.New("refresh token is required")
	ErrUserNotFound          = errors.New("user not found")
)
