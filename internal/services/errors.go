package services

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileExists     = errors.New("profile already exists")
	ErrPlatformNotLinked = errors.New("platform not linked")
	ErrUnknownPlatform   = errors.New("unknown platform")
	ErrInvalidInput      = errors.New("invalid input")
)
