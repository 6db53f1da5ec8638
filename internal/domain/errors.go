package domain

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrMemberNotFound     = errors.New("member not found")
	ErrSelfTarget         = errors.New("cannot target yourself")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAdminImmutable     = errors.New("admin cannot be modified")
)
