// Package common contains shared constants and sentinel errors used across
// userdeck components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrorDuplicateID = errors.New("duplicate id")
	ErrorEmptyID     = errors.New("empty id")

	// Auth errors.
	ErrorInvalidToken = errors.New("invalid token")
)
