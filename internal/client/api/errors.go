package api

import "errors"

var (
	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend rejected the credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the backend's message field so the UI can surface it
// verbatim. FallbackMessage is used when the backend sent none.
type APIError struct {
	StatusCode int
	Message    string
}

const FallbackMessage = "something went wrong, please try again"

func (e *APIError) Error() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}
