package session

import "errors"

var (
	// ErrUnknownView indicates a view name that is not one of the four screens.
	ErrUnknownView = errors.New("session: unknown view")

	// ErrUnknownField indicates a linear-motion form field that does not exist.
	ErrUnknownField = errors.New("session: unknown form field")
)
