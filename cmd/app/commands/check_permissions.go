package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	validation "github.com/jellydator/validation"

	"github.com/allisson/ros/internal/identity"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
	rbacUseCase "github.com/allisson/ros/internal/rbac/usecase"
	customValidation "github.com/allisson/ros/internal/validation"
)

// CheckPermissionsResult is the JSON output of check-permissions.
type CheckPermissionsResult struct {
	Application string   `json:"application"`
	OrgID       string   `json:"org_id"`
	Permissions []string `json:"permissions"`
}

type checkPermissionsInput struct {
	Identity    string
	Application string
	Format      string
}

func (i checkPermissionsInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Identity, validation.Required),
		validation.Field(&i.Application, validation.Required, customValidation.NoWhitespace),
		validation.Field(&i.Format, validation.Required, validation.In("text", "json")),
	)
}

// RunCheckPermissions asks RBAC which permissions identityHeader holds for application.
// The identity is forwarded verbatim, exactly as the API gate would forward it.
func RunCheckPermissions(
	ctx context.Context,
	fetcher rbacUseCase.PermissionFetcher,
	logger *slog.Logger,
	identityHeader string,
	application string,
	format string,
	io IOTuple,
) error {
	input := checkPermissionsInput{Identity: identityHeader, Application: application, Format: format}
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid arguments: %w", customValidation.WrapValidationError(err))
	}

	caller, err := identity.Decode(identityHeader)
	if err != nil {
		return fmt.Errorf("failed to decode identity: %w", err)
	}

	logger.Info("checking permissions",
		slog.String("application", application),
		slog.String("org_id", caller.Organization()),
	)

	permissions, err := fetcher.FetchPermissions(
		ctx,
		rbacDomain.Application(application),
		rbacDomain.Credential(identityHeader),
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to fetch permissions: %w", err)
	}

	result := CheckPermissionsResult{
		Application: application,
		OrgID:       caller.Organization(),
		Permissions: make([]string, 0, len(permissions)),
	}
	for _, p := range permissions {
		result.Permissions = append(result.Permissions, string(p))
	}

	if format == "json" {
		return writeJSON(result, io.Writer)
	}
	return writePermissionsText(result, io.Writer)
}

func writePermissionsText(result CheckPermissionsResult, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Organization: %s\nApplication: %s\n", result.OrgID, result.Application); err != nil {
		return err
	}
	if len(result.Permissions) == 0 {
		_, err := fmt.Fprintln(writer, "No permissions granted.")
		return err
	}
	for _, p := range result.Permissions {
		if _, err := fmt.Fprintf(writer, "  - %s\n", p); err != nil {
			return err
		}
	}
	return nil
}
