package libcms

import "strings"

// This file is only for test purpose and is only loaded by test framework.

// ParseRequestError parses the given error body for test purpose.
func ParseRequestError(body string, code int) error {
	return parseRequestError(strings.NewReader(body), code)
}
