package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure returned by this module wraps exactly one of
// these so callers can tell "log in again" from "retry later" from "local
// data is broken" with errors.Is.
var (
	// ErrEnvironment means the clock or timezone source is unavailable. Not retried.
	ErrEnvironment = errors.New("environment unavailable")
	// ErrConfiguration means embedded secret material is unusable. A build defect.
	ErrConfiguration = errors.New("invalid client configuration")
	// ErrPersistence means a local write failed.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotFound means the requested local record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCorruptData means a local record exists but cannot be decoded.
	ErrCorruptData = errors.New("corrupt data")
	// ErrNetwork means the transport failed before a response was read.
	ErrNetwork = errors.New("network failure")
	// ErrRefreshToken means the remote service rejected the refresh exchange.
	ErrRefreshToken = errors.New("refresh token rejected")
	// ErrProtocol means the remote response did not have the expected shape.
	ErrProtocol = errors.New("unexpected response from remote service")

	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidHeader         = errors.New("invalid header value")
	ErrInvalidSignatureInput = errors.New("invalid signature input")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrRegionNotSet          = errors.New("region is not set")
	ErrNoBalancesFolder      = errors.New("balances download folder is not set")
	ErrInvalidPersonID       = errors.New("invalid person id")
	ErrWrongPassphrase       = errors.New("wrong passphrase or corrupted backup")
	ErrNoSaveDirectory       = errors.New("no save directory configured")
	ErrInvalidUsername       = errors.New("invalid username")
)

// StatusError carries the detail of a non-success HTTP answer.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
	Kind       error
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Kind, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match the sentinel in Kind.
func (e *StatusError) Unwrap() error { return e.Kind }

// NeedsLogin reports whether err means the stored session is unusable and a
// full login is required.
func NeedsLogin(err error) bool {
	return errors.Is(err, ErrRefreshToken)
}

// Retryable reports whether err is transient.
func Retryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
