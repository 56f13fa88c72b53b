package apperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// Fiber maps a service error onto a fiber.Error. Errors of unknown kind are
// logged and replaced by the fallback message so internals never leak.
func Fiber(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr.Kind, ErrValidation):
			return fiber.NewError(fiber.StatusBadRequest, appErr.Msg)
		case errors.Is(appErr.Kind, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, appErr.Msg)
		}
	}
	slog.Error(fallback, "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
