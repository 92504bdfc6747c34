package domain

import (
	"log/slog"
	"sort"
	"strings"
)

// Credential is the opaque identity token forwarded verbatim to RBAC.
type Credential string

// Application names the service whose permissions are queried (e.g. "ros").
type Application string

// Permission is a capability string granted by RBAC, e.g. "ros:*:read".
type Permission string

// PermissionSet is the set of permissions that satisfy a check.
// A request passes when any granted permission is a member.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a PermissionSet from permission strings.
func NewPermissionSet(permissions ...string) PermissionSet {
	set := make(PermissionSet, len(permissions))
	for _, p := range permissions {
		set[Permission(p)] = struct{}{}
	}
	return set
}

// Contains reports whether p is a member of the set.
func (s PermissionSet) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Intersects reports whether at least one of granted is in the set.
// An empty granted list never intersects.
func (s PermissionSet) Intersects(granted []Permission) bool {
	for _, p := range granted {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// String renders the set for logs, sorted.
func (s PermissionSet) String() string {
	parts := make([]string, 0, len(s))
	for p := range s {
		parts = append(parts, string(p))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// CheckInput is the per-request bundle handed to the access gate.
// It is built when a request enters a protected route and consumed once.
type CheckInput struct {
	Permissions PermissionSet
	Application Application
	Path        string
	Credential  Credential
	Logger      *slog.Logger
}

// Decision describes why a request was let through.
type Decision string

const (
	// DecisionAllowed means RBAC granted a required permission.
	DecisionAllowed Decision = "allowed"
	// DecisionBypassed means enforcement is disabled process-wide.
	DecisionBypassed Decision = "bypassed"
	// DecisionExempt means the path is a management endpoint.
	DecisionExempt Decision = "exempt"
)
