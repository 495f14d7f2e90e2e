package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindConfig means the relay is missing its credential. No call was made.
	KindConfig ErrorKind = "config_error"
	// KindUpstream covers any failure while calling or decoding the provider.
	KindUpstream ErrorKind = "upstream_error"
)

// MissingKeyMessage is reported when no provider credential is configured.
const MissingKeyMessage = "DEEPSEEK_API_KEY not set in environment variables"

const fallbackUpstreamMessage = "provider call failed"

// RelayError is the failure half of a relay result.
type RelayError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error returns the cause text unchanged so it can be surfaced to the caller as is.
func (e *RelayError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		if msg := e.Err.Error(); msg != "" {
			return msg
		}
	}
	if e.Message == "" {
		return fallbackUpstreamMessage
	}
	return e.Message
}

func (e *RelayError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newConfigError() *RelayError {
	return &RelayError{Kind: KindConfig, Message: MissingKeyMessage}
}

func newUpstreamError(err error) *RelayError {
	return &RelayError{Kind: KindUpstream, Message: fallbackUpstreamMessage, Err: err}
}

// KindOf reports the relay error kind of err, defaulting to KindUpstream.
func KindOf(err error) ErrorKind {
	var re *RelayError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUpstream
}

// StatusError is a non-2xx response from the provider.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}
