package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds raised by the poll-detect-notify pipeline.
var (
	ErrTransport     = errors.New("transport error")
	ErrDecode        = errors.New("decode error")
	ErrUpstream      = errors.New("upstream error")
	ErrSchema        = errors.New("schema error")
	ErrFieldMissing  = errors.New("field missing")
	ErrUnknownStatus = errors.New("unknown status")
	ErrDelivery      = errors.New("delivery error")
	ErrStartup       = errors.New("startup error")
)

// UpstreamError describes a non-200 answer from the status endpoint.
// AuthScheme carries only the header shape, never the credential.
type UpstreamError struct {
	URL        string
	StatusCode int
	AuthScheme string
	Detail     string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream %s returned %d (auth: %s)", e.URL, e.StatusCode, e.AuthScheme)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap lets errors.Is match ErrUpstream.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// StartupError lists the settings that prevent the process from starting.
type StartupError struct {
	Missing []string
	Err     error
}

func (e *StartupError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required settings: %s", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrStartup.Error()
}

// Unwrap exposes both ErrStartup and the underlying cause.
func (e *StartupError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrStartup, e.Err}
	}
	return []error{ErrStartup}
}
