package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidURL is returned when the input does not look like a supported product page.
// It is a user input error and must not be retried.
var ErrInvalidURL = errors.New("invalid product url")

// FetchError reports a failed attempt to obtain the reviews page.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err carries a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
