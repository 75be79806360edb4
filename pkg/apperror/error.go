package apperror

import "net/http"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func PayloadTooLarge(message string) *AppError {
	return New(http.StatusRequestEntityTooLarge, message, nil)
}

// Internal hides err behind a generic message; the cause stays available for logging
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "An unexpected error occurred", err)
}
