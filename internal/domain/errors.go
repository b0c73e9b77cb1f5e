package domain

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("no access to this course")
	ErrRestricted   = errors.New("record has dependent records")
	ErrInvalidInput = errors.New("invalid input")
)
