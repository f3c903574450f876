package domain

import "errors"

var (
	ErrResultNotFound = errors.New("analysis result not found")
	ErrStoreUnhealthy = errors.New("entry store unavailable")
)
