package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrArchived = errors.New("archived")
)

// Error несёт текст для клиента ({"error": Msg}) и один из sentinel-ов выше.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func containerNotFound(id string) error {
	return fail(ErrNotFound, "Container %s not found", id)
}

func customerNotFound(id int64) error {
	return fail(ErrNotFound, "Customer %d not found", id)
}
