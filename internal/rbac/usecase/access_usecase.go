package usecase

import (
	"context"
	"log/slog"
	"strings"

	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// GateConfig is the process-wide gate configuration, fixed at startup.
type GateConfig struct {
	// Enabled turns permission enforcement on.
	Enabled bool
}

type accessUseCase struct {
	config  GateConfig
	fetcher PermissionFetcher
	logger  *slog.Logger
}

// NewAccessUseCase creates the access gate.
func NewAccessUseCase(config GateConfig, fetcher PermissionFetcher, logger *slog.Logger) AccessUseCase {
	return &accessUseCase{
		config:  config,
		fetcher: fetcher,
		logger:  logger,
	}
}

// EnsureAuthorized applies the gate policy to a single request.
func (a *accessUseCase) EnsureAuthorized(
	ctx context.Context,
	input *rbacDomain.CheckInput,
) (rbacDomain.Decision, error) {
	if !a.config.Enabled {
		return rbacDomain.DecisionBypassed, nil
	}

	if isManagementPath(input.Path) {
		return rbacDomain.DecisionExempt, nil
	}

	logger := input.Logger
	if logger == nil {
		logger = a.logger
	}

	if input.Credential == "" {
		logger.Debug("authorization failed: identity not found", slog.String("path", input.Path))
		return "", rbacDomain.NewMissingCredentialError()
	}

	granted, err := a.fetcher.FetchPermissions(ctx, input.Application, input.Credential, logger)
	if err != nil {
		return "", err
	}

	if input.Permissions.Intersects(granted) {
		return rbacDomain.DecisionAllowed, nil
	}

	logger.Debug("authorization failed: insufficient permissions",
		slog.String("path", input.Path),
		slog.String("application", string(input.Application)),
		slog.String("required", input.Permissions.String()),
		slog.Int("granted_count", len(granted)))
	return "", rbacDomain.NewPermissionDeniedError()
}

func isManagementPath(path string) bool {
	return strings.HasPrefix(path, rbacDomain.ManagementPathPrefix)
}
