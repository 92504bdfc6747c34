// Package usecase implements the access decision gate that every protected
// request passes through before its handler runs.
package usecase

import (
	"context"
	"log/slog"

	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// PermissionFetcher retrieves the permissions a credential holds for an application.
// service.PermissionClient satisfies it.
type PermissionFetcher interface {
	FetchPermissions(
		ctx context.Context,
		application rbacDomain.Application,
		credential rbacDomain.Credential,
		logger *slog.Logger,
	) ([]rbacDomain.Permission, error)
}

// AccessUseCase decides whether a request may proceed.
type AccessUseCase interface {
	// EnsureAuthorized returns the decision that let the request through, or an
	// *rbacDomain.AccessError carrying the status and message to send back.
	//
	// Order of evaluation:
	//   - enforcement disabled: DecisionBypassed, no network call
	//   - path under /mgmt/: DecisionExempt, no network call
	//   - no credential: 400 "Identity not found in request."
	//   - RBAC failure: the mapped upstream error
	//   - a granted permission in input.Permissions: DecisionAllowed
	//   - otherwise: 403 "User does not have correct permissions to access the service."
	EnsureAuthorized(ctx context.Context, input *rbacDomain.CheckInput) (rbacDomain.Decision, error)
}
