package apierror

import "net/http"

// An Error represents the error format rendered by the CMS API.
type Error struct {
	HTTPCode int    `json:"-"`
	Message  string `json:"message"`
}

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if apierr, ok := err.(*Error); ok && apierr.HTTPCode != 0 {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given code and message.
func New(code int, message string) *Error {
	return &Error{HTTPCode: code, Message: message}
}

// BadRequest returns a new 400 Error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound returns a new 404 Error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Unauthorized returns a new 401 Error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.Message
}
