package util

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidParam  = errors.New("invalid parameter")
	ErrCacheDisabled = errors.New("view cache not configured")
	ErrNoTemporal    = errors.New("temporal client not configured")
)
