package entity

import "errors"

var (
	// ErrConfigurationMissing is returned when an adapter is built without its credential.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrUpstreamRequestFailed wraps transport errors and non-2xx answers from providers.
	ErrUpstreamRequestFailed = errors.New("upstream request failed")
	ErrPersistenceFailed     = errors.New("persistence failed")
)
