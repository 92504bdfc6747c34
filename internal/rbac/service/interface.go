// Package service talks to the remote RBAC service: it builds the transport,
// issues permission queries and interprets the answers.
package service

import (
	"context"
	"log/slog"

	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// PermissionClient queries the RBAC service for the permissions a credential holds.
type PermissionClient interface {
	// FetchPermissions returns the permissions granted to credential for application.
	// Non-200 answers and transport failures are returned as *rbacDomain.AccessError.
	FetchPermissions(
		ctx context.Context,
		application rbacDomain.Application,
		credential rbacDomain.Credential,
		logger *slog.Logger,
	) ([]rbacDomain.Permission, error)

	// Fetch performs a single request to rawURL with the credential attached and decodes
	// the access list. Methods outside the allowed set fail with a 405 AccessError
	// before any network call.
	Fetch(
		ctx context.Context,
		method string,
		rawURL string,
		credential rbacDomain.Credential,
		logger *slog.Logger,
	) (*AccessResponse, error)
}
