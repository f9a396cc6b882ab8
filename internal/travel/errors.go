package travel

import "errors"

var (
	// ErrProviderUnavailable indicates the travel provider could not be reached.
	ErrProviderUnavailable = errors.New("travel provider unavailable")

	// ErrProviderTimeout indicates the provider call exceeded its timeout.
	ErrProviderTimeout = errors.New("travel provider timed out")

	// ErrInvalidResponse indicates the provider answered with something
	// that is not a usable duration.
	ErrInvalidResponse = errors.New("invalid travel provider response")

	// ErrUnsupportedProvider indicates the configured provider id is unknown.
	ErrUnsupportedProvider = errors.New("unsupported travel provider")
)
