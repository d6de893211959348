package api

import (
	"errors"
	"fmt"
)

// Kind separates the two failure families of the REST contract.
type Kind int

const (
	// KindTransport covers network errors, timeouts and non-2xx answers.
	KindTransport Kind = iota
	// KindApplication is a 2xx answer carrying success=false.
	KindApplication
)

func (k Kind) String() string {
	if k == KindApplication {
		return "application"
	}
	return "transport"
}

// Error is the single error type handed to the catalog view. Error() is the
// displayable message.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response arrived
	Code    string // envelope `code`, e.g. UNAUTHORIZED
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return defaultMessage
}

func (e *Error) Unwrap() error { return e.Err }

const defaultMessage = "request failed"

// ErrUnauthorized matches answers whose envelope code is UNAUTHORIZED.
var ErrUnauthorized = errors.New("unauthorized")

// Is lets callers test errors.Is(err, api.ErrUnauthorized).
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && (e.Code == "UNAUTHORIZED" || e.Status == 401)
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}

func statusError(status int, env *envelope) *Error {
	e := &Error{Kind: KindTransport, Status: status}
	if env != nil {
		e.Message = env.Message
		e.Code = env.Code
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("request failed with status code %d", status)
	}
	return e
}

func applicationError(status int, env *envelope, fallback string) *Error {
	e := &Error{Kind: KindApplication, Status: status, Message: env.Message, Code: env.Code}
	if e.Message == "" {
		e.Message = fallback
	}
	return e
}

// Message renders any error the way the view shows it.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
