package libcms

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when an entity id can not be part of a request path.
var ErrInvalidID = errors.New("invalid id")

// A RequestError represents a failed request: either a non-2xx response or a transport failure.
type RequestError struct {
	StatusCode int    // Zero on transport failure
	Message    string // Message provided by the server, if any
	Err        error
}

// parseRequestError reads an error body. Both `{"message": "..."}` and `{"error": {"message": "..."}}` are understood.
func parseRequestError(r io.Reader, code int) error {
	rerr := &RequestError{StatusCode: code}

	payload, err := io.ReadAll(r)
	if err != nil {
		rerr.Err = errors.Wrap(err, "could not read error response")
		return rerr
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return rerr // Not a JSON payload, only the status code matters.
	}

	switch {
	case v.Exists("message"):
		rerr.Message = string(v.GetStringBytes("message"))
	case v.Exists("error", "message"):
		rerr.Message = string(v.GetStringBytes("error", "message"))
	case v.Get("error") != nil && v.Get("error").Type() == fastjson.TypeString:
		rerr.Message = string(v.GetStringBytes("error"))
	}

	return rerr
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("unexpected status code %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if err means that the requested entity does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}

	var rerr *RequestError
	return errors.As(err, &rerr) && rerr.StatusCode == http.StatusNotFound
}

// Message returns the message provided by the server if err carries one, otherwise the fallback.
func Message(err error, fallback string) string {
	var rerr *RequestError
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	return fallback
}
