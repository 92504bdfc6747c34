package domain

import (
	"fmt"
	"net/http"

	"github.com/allisson/ros/internal/errors"
)

// Kinds of access failure. Match them with errors.Is on an *AccessError.
var (
	// ErrInvalidMethod is a misconfigured outbound method on the permission client.
	ErrInvalidMethod = errors.New("invalid outbound method")

	// ErrUpstreamUnauthorized means RBAC could not verify the credential.
	ErrUpstreamUnauthorized = errors.Wrap(errors.ErrUnauthorized, "rbac rejected credential")

	// ErrUpstreamForbidden means RBAC refused to list the caller's permissions.
	ErrUpstreamForbidden = errors.Wrap(errors.ErrForbidden, "rbac refused access")

	// ErrUpstreamNotFound means the RBAC endpoint does not exist, usually a bad base URL.
	ErrUpstreamNotFound = errors.Wrap(errors.ErrNotFound, "rbac endpoint not found")

	// ErrUpstream is any other non-200 answer from RBAC.
	ErrUpstream = errors.New("rbac returned an error")

	// ErrUpstreamUnavailable means no HTTP response was received from RBAC.
	ErrUpstreamUnavailable = errors.Wrap(errors.ErrUnavailable, "rbac unreachable")

	// ErrMalformedResponse means RBAC answered 200 with a body lacking the data list.
	ErrMalformedResponse = errors.New("malformed rbac response")

	// ErrMissingCredential means a checked request carried no identity header.
	ErrMissingCredential = errors.Wrap(errors.ErrInvalidInput, "identity not found")

	// ErrPermissionDenied means none of the granted permissions satisfy the route.
	ErrPermissionDenied = errors.Wrap(errors.ErrForbidden, "permission denied")
)

// Messages returned to callers.
const (
	MsgUnableToRetrievePermissions = "Unable to retrieve permissions."
	MsgURLNotFound                 = "The requested URL was not found."
	MsgBackendError                = "Error received from backend service."
	MsgMalformedResponse           = "Unable to parse permissions response."
	MsgIdentityNotFound            = "Identity not found in request."
	MsgPermissionDenied            = "User does not have correct permissions to access the service."
)

// AccessError terminates a request with a status code and a short message.
// The message is safe to show to callers; the wrapped cause is for logs only.
type AccessError struct {
	StatusCode int
	Message    string
	kind       error
	cause      error
}

// Error implements error.
func (e *AccessError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (%d): %v", e.kind, e.StatusCode, e.cause)
	}
	return fmt.Sprintf("%s (%d)", e.kind, e.StatusCode)
}

// Unwrap returns the kind and the underlying cause so errors.Is matches both.
func (e *AccessError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// NewInvalidMethodError rejects an outbound method outside the allowed list.
func NewInvalidMethodError(method string) *AccessError {
	return &AccessError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    fmt.Sprintf("'%s' is not valid HTTP method.", method),
		kind:       ErrInvalidMethod,
	}
}

// NewUpstreamStatusError maps a non-200 RBAC status to an AccessError.
// It returns nil for 200.
func NewUpstreamStatusError(statusCode int) *AccessError {
	switch statusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return &AccessError{StatusCode: statusCode, Message: MsgUnableToRetrievePermissions, kind: ErrUpstreamUnauthorized}
	case http.StatusForbidden:
		return &AccessError{StatusCode: statusCode, Message: MsgUnableToRetrievePermissions, kind: ErrUpstreamForbidden}
	case http.StatusNotFound:
		return &AccessError{StatusCode: statusCode, Message: MsgURLNotFound, kind: ErrUpstreamNotFound}
	default:
		return &AccessError{StatusCode: statusCode, Message: MsgBackendError, kind: ErrUpstream}
	}
}

// NewUnavailableError wraps a transport failure talking to RBAC.
func NewUnavailableError(cause error) *AccessError {
	return &AccessError{
		StatusCode: http.StatusBadGateway,
		Message:    MsgBackendError,
		kind:       ErrUpstreamUnavailable,
		cause:      cause,
	}
}

// NewMalformedResponseError wraps a decoding failure of a 200 RBAC body.
func NewMalformedResponseError(cause error) *AccessError {
	return &AccessError{
		StatusCode: http.StatusInternalServerError,
		Message:    MsgMalformedResponse,
		kind:       ErrMalformedResponse,
		cause:      cause,
	}
}

// NewMissingCredentialError rejects a checked request without identity.
func NewMissingCredentialError() *AccessError {
	return &AccessError{StatusCode: http.StatusBadRequest, Message: MsgIdentityNotFound, kind: ErrMissingCredential}
}

// NewPermissionDeniedError rejects a caller whose permissions do not match.
func NewPermissionDeniedError() *AccessError {
	return &AccessError{StatusCode: http.StatusForbidden, Message: MsgPermissionDenied, kind: ErrPermissionDenied}
}

// IsDenial reports whether err is a verdict about the caller (missing identity or
// insufficient permissions) rather than a failure to reach a verdict.
func IsDenial(err error) bool {
	return errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrMissingCredential)
}
