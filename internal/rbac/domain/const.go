// Package domain defines the permission model used to authorize API requests
// against the remote RBAC service.
package domain

import "net/http"

const (
	// IdentityHeader carries the caller credential, inbound and outbound.
	IdentityHeader = "X-RH-IDENTITY"

	// ManagementPathPrefix marks internal endpoints that are never checked.
	ManagementPathPrefix = "/mgmt/"

	// AccessEndpoint is the RBAC path listing a caller's permissions for an application.
	AccessEndpoint = "/api/rbac/v1/access/"

	// ApplicationQueryParam names the application in AccessEndpoint requests.
	ApplicationQueryParam = "application"
)

// allowedMethods are the only verbs the permission client will send.
var allowedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodOptions: {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
}

// IsAllowedMethod reports whether method (already upper-cased) may be sent to RBAC.
func IsAllowedMethod(method string) bool {
	_, ok := allowedMethods[method]
	return ok
}
