package model

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
)
