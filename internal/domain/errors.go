package domain

import "errors"

var (
	// ErrNoOptions is returned when a bank question has no options to choose from.
	ErrNoOptions = errors.New("question has no options")
	// ErrCorrectOptionCount is returned when a question does not have exactly one correct option.
	ErrCorrectOptionCount = errors.New("question must have exactly one correct option")
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrUnknownAction indicates a client sent an action the session does not understand.
	ErrUnknownAction = errors.New("unknown action")
)
