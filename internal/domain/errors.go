package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been opened or was closed.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidBank indicates loaded content breaks a question invariant.
	ErrInvalidBank = errors.New("invalid question bank")
	// ErrResultNotReady is returned when a result is requested before the session finished.
	ErrResultNotReady = errors.New("quiz result not ready")
)
