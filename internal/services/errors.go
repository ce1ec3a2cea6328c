package services

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyResponse = errors.New("empty response")
	ErrUpstream      = errors.New("upstream error")
)

// FlowError reports a failed flow call. Kind is one of ErrInvalidInput,
// ErrEmptyResponse or ErrUpstream and is matched with errors.Is.
type FlowError struct {
	Flow string
	Kind error
	Err  error
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Flow, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Flow, e.Kind, e.Err)
}

func (e *FlowError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ErrorKind names the kind of a flow error for API responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	}
	return "internal_error"
}

// IsTimeout reports whether a flow gave up waiting on the model.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func invalidInput(flow, format string, args ...any) error {
	return &FlowError{Flow: flow, Kind: ErrInvalidInput, Err: fmt.Errorf(format, args...)}
}

func emptyResponse(flow string, err error) error {
	return &FlowError{Flow: flow, Kind: ErrEmptyResponse, Err: err}
}

func upstreamError(flow string, err error) error {
	return &FlowError{Flow: flow, Kind: ErrUpstream, Err: err}
}

func isEmptyResponse(err error) bool {
	return errors.Is(err, ErrEmptyResponse)
}
