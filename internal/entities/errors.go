// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrMalformedBackup signals a backup file that failed decoding; the
	// operation aborts before any mutation is attempted.
	ErrMalformedBackup = errors.New("malformed backup")
	// ErrUnknownRole signals a configured role missing on the platform;
	// fatal at operation start, never per mutation.
	ErrUnknownRole = errors.New("unknown role")
	// ErrPlatformMutation signals a single grant/revoke/rename call failure,
	// isolated per mutation.
	ErrPlatformMutation = errors.New("platform mutation failed")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotConnected signals the platform session is not established.
	ErrNotConnected = errors.New("not connected")
)
