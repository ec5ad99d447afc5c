// Package errors defines domain-level errors used throughout the application.
// Tool handlers render these as text payloads rather than failing the MCP call.
package errors

import (
	"errors"
)

var (
	// ErrConfigLoadFailed indicates that the startup configuration could not be
	// read or was missing required credentials.
	ErrConfigLoadFailed = errors.New("config load failed")

	// ErrMissingArgument indicates that a required tool argument was absent or empty.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidArgument indicates that a tool argument was present but unusable,
	// e.g. an unknown operation tag or an out-of-range value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotAuthenticated indicates that no usable Spotify token could be
	// constructed from the configuration.
	ErrNotAuthenticated = errors.New("not authenticated")
)
