package fetch

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// InvalidURLError is returned when a target address cannot be used at
// all, before any request is issued: unparsable syntax or a scheme the
// package does not speak.
type InvalidURLError struct {
	Raw string
	Err error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid url %q: %s", e.Raw, e.Err)
	}
	return fmt.Sprintf("invalid url %q", e.Raw)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the server answered with a non-2xx
// status and the caller tried to consume the body as a success payload.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// IsInvalidURL reports whether err originates from URL validation.
func IsInvalidURL(err error) bool {
	var target *InvalidURLError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a 404 raised on body access.
func IsNotFound(err error) bool {
	var target *StatusError
	return errors.As(err, &target) && target.Code == http.StatusNotFound
}

// IsServerError reports whether err carries any non-2xx status.
func IsServerError(err error) bool {
	var target *StatusError
	return errors.As(err, &target)
}
