package errmap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"connectrpc.com/connect"
	json "github.com/goccy/go-json"

	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/stoken"
)

// Code classifies high-level error categories for user-facing messages.
type Code string

const (
	CodeCanceled        Code = "canceled"
	CodeTimeout         Code = "timeout"
	CodeNotFound        Code = "not_found"
	CodeInvalid         Code = "invalid"
	CodeUnavailable     Code = "unavailable"
	CodePartialCascade  Code = "partial_cascade"
	CodeInvariant       Code = "invariant_violation"
	CodeConflict        Code = "conflict"
	CodeUnauthenticated Code = "unauthenticated"
	CodeRateLimited     Code = "rate_limited"
	CodeUnexpected      Code = "unexpected"
)

// Error carries a code and context while preserving the original cause via Unwrap.
type Error struct {
	Code      Code
	Message   string
	Retryable bool
	cause     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	return humanize(e.Code, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

func humanize(code Code, cause error) string {
	switch code {
	case CodeCanceled:
		return "request was canceled"
	case CodeTimeout:
		return "request timed out"
	case CodeUnauthenticated:
		return "authentication required"
	case CodeRateLimited:
		return "too many requests"
	default:
		if cause != nil {
			return cause.Error()
		}
		return "unexpected error"
	}
}

// New constructs an Error with the supplied code, message, and underlying cause.
func New(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Map converts an arbitrary error into an *Error with a best-effort code.
// Order matters: a partial cascade wraps the store error that caused it.
func Map(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Code: CodeCanceled, cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Code: CodeTimeout, Retryable: true, cause: err}
	case errors.Is(err, movable.ErrPartialCascade):
		return &Error{Code: CodePartialCascade, Retryable: true, cause: err}
	case errors.Is(err, movable.ErrInvariantViolation):
		return &Error{Code: CodeInvariant, cause: err}
	case errors.Is(err, movable.ErrCommitInProgress):
		return &Error{Code: CodeConflict, Retryable: true, cause: err}
	case errors.Is(err, movable.ErrValidation):
		return &Error{Code: CodeInvalid, cause: err}
	case errors.Is(err, movable.ErrItemNotFound),
		errors.Is(err, movable.ErrSessionNotFound),
		errors.Is(err, sql.ErrNoRows):
		return &Error{Code: CodeNotFound, cause: err}
	case errors.Is(err, stoken.ErrInvalidToken),
		errors.Is(err, stoken.ErrTokenExpired),
		errors.Is(err, stoken.ErrMissingToken):
		return &Error{Code: CodeUnauthenticated, cause: err}
	case errors.Is(err, movable.ErrStoreUnavailable):
		return &Error{Code: CodeUnavailable, Retryable: true, cause: err}
	}

	// the hosted database is reached over the network
	var nerr net.Error
	if errors.As(err, &nerr) {
		if nerr.Timeout() {
			return &Error{Code: CodeTimeout, Retryable: true, cause: err}
		}
		return &Error{Code: CodeUnavailable, Retryable: true, cause: err}
	}
	var operr *net.OpError
	if errors.As(err, &operr) {
		return &Error{Code: CodeUnavailable, Retryable: true, cause: err}
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "database is locked"), strings.Contains(lower, "busy"):
		return &Error{Code: CodeUnavailable, Retryable: true, cause: err}
	case strings.Contains(lower, "constraint failed"):
		return &Error{Code: CodeInvalid, cause: err}
	}

	return &Error{Code: CodeUnexpected, cause: err}
}

// CodeOf is a shortcut for the mapped code of err.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var me *Error
	if errors.As(Map(err), &me) {
		return me.Code
	}
	return CodeUnexpected
}

// ConnectCode maps an error category onto the RPC status space.
func ConnectCode(code Code) connect.Code {
	switch code {
	case CodeCanceled:
		return connect.CodeCanceled
	case CodeTimeout:
		return connect.CodeDeadlineExceeded
	case CodeNotFound:
		return connect.CodeNotFound
	case CodeInvalid:
		return connect.CodeInvalidArgument
	case CodeUnavailable:
		return connect.CodeUnavailable
	case CodePartialCascade:
		return connect.CodeAborted
	case CodeInvariant:
		return connect.CodeFailedPrecondition
	case CodeConflict:
		return connect.CodeAlreadyExists
	case CodeUnauthenticated:
		return connect.CodeUnauthenticated
	case CodeRateLimited:
		return connect.CodeResourceExhausted
	default:
		return connect.CodeInternal
	}
}

// ToConnect converts err into a *connect.Error carrying the friendly message.
// Errors that already are connect errors pass through.
func ToConnect(err error) error {
	if err == nil {
		return nil
	}
	var ce *connect.Error
	if errors.As(err, &ce) {
		return err
	}
	mapped := Map(err)
	var me *Error
	errors.As(mapped, &me)
	cerr := connect.NewError(ConnectCode(me.Code), errors.New(Friendly(mapped)))
	cerr.Meta().Set("x-error-code", string(me.Code))
	return cerr
}

// ToJSON marshals an error into {"code":"...","message":"..."}.
// If err is not an *Error, code defaults to "unknown".
func ToJSON(err error) string {
	type payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	p := payload{Code: "unknown"}
	if err != nil {
		p.Message = err.Error()
		var me *Error
		if errors.As(err, &me) {
			p.Code = string(me.Code)
			p.Message = me.Error()
		}
	}
	b, mErr := json.Marshal(p)
	if mErr != nil {
		return `{"code":"unknown","message":""}`
	}
	return string(b)
}

// Friendly returns a user-facing, action-oriented message.
func Friendly(err error) string {
	if err == nil {
		return ""
	}
	var me *Error
	if !errors.As(err, &me) {
		return err.Error()
	}

	switch me.Code {
	case CodeCanceled:
		return "Request was canceled."
	case CodeTimeout:
		return "The database did not answer in time. Please retry."
	case CodeNotFound:
		return "The requested item does not exist."
	case CodeInvalid:
		if me.cause != nil {
			return fmt.Sprintf("Invalid input: %s.", me.cause.Error())
		}
		return "Invalid input."
	case CodeUnavailable:
		return "The database is unavailable. Please retry."
	case CodePartialCascade:
		return "Deleting did not complete and was rolled back. Please retry."
	case CodeInvariant:
		return "The collection order is inconsistent. Run a repair and retry."
	case CodeConflict:
		return "A save is already in progress."
	case CodeUnauthenticated:
		return "Please sign in again."
	case CodeRateLimited:
		return "Too many requests. Please wait a moment."
	default:
		if s := me.Error(); s != "" {
			return s
		}
		return "Unexpected error."
	}
}
