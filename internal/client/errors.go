package client

import "errors"

var (
	// ErrNoResultURL is returned when a follow-up operation is given a result
	// without an output URL.
	ErrNoResultURL = errors.New("way2enjoy: result carries no output url")
	// ErrInvalidResponse is returned when a 2xx upload answer is not a
	// compression result document.
	ErrInvalidResponse = errors.New("way2enjoy: invalid response body")
	// ErrTransport wraps failures where no HTTP response was received.
	ErrTransport = errors.New("way2enjoy: request returned no response")
)
