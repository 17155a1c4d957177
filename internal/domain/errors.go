package domain

import "errors"

var (
	ErrInvalidSample  = errors.New("invalid speed sample")
	ErrTypeMismatch   = errors.New("stored value has a different type")
	ErrThrottled      = errors.New("message throttled")
	ErrEmptyRecipient = errors.New("message recipient is empty")
	ErrNotMonitoring  = errors.New("monitoring is not running")
)
