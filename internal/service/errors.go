package service

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("recipe not found")
	ErrForbidden    = errors.New("recipe belongs to another user")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("user already exists")
	ErrUnauthorized = errors.New("invalid email or password")
	ErrUnknownUser  = errors.New("unknown user")
)
