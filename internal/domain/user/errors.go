package user

import "errors"

var (
	ErrNoContact   = errors.New("either email or phone is required")
	ErrInvalidRole = errors.New("invalid role")
)
