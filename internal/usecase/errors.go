package usecase

import (
	"errors"
	"fmt"

	"app/internal/validator"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ValidationErrors はユーザーが直せる入力の問題の集まり。業務上は想定内なので
// error扱いだがログはerrorレベルにしない
type ValidationErrors struct {
	Errors []validator.FieldError
}

func (e *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d problem(s)", len(e.Errors))
}

func AsValidationErrors(err error) (*ValidationErrors, bool) {
	var ve *ValidationErrors
	ok := errors.As(err, &ve)
	return ve, ok
}

// Logger は echo.Logger のうち使う分だけ
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
