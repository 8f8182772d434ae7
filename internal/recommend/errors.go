package recommend

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates the remote backend was selected without a
// credential in the environment. Raised before any network call is attempted.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// DecodeError reports that a backend's response could not be decoded. It
// carries the raw response body so the failure can be diagnosed; a decode
// failure is never silently downgraded to an empty recommendation list.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse backend response as JSON: %v\nResponse: %s", e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
