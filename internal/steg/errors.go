package steg

import "errors"

// Error kinds. Match them with errors.Is.
var (
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrNoMessageFound       = errors.New("no message found")
	ErrUnexpected           = errors.New("unexpected encoder state")
)

// Error is a typed encoder failure. Error() returns Message unchanged so it can
// be shown to users as-is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func insufficientCapacity(msg string) error {
	return &Error{Kind: ErrInsufficientCapacity, Message: msg}
}

func noMessageFound() error {
	return &Error{Kind: ErrNoMessageFound, Message: "No message in image."}
}

func unexpected() error {
	return &Error{Kind: ErrUnexpected, Message: "Unexpected error."}
}
