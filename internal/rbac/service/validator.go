package service

import (
	"log/slog"
	"net/http"

	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// ValidateResponse turns a non-200 RBAC response into an *rbacDomain.AccessError.
//
// It must run before the body is read so error bodies are never decoded.
// On 401 the credential sent under the identity header is logged for auditing.
func ValidateResponse(resp *http.Response, outbound http.Header, logger *slog.Logger) error {
	accessErr := rbacDomain.NewUpstreamStatusError(resp.StatusCode)
	if accessErr == nil {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		logger.Info("error received from rbac service", slog.Int("status_code", resp.StatusCode))

		if resp.StatusCode == http.StatusUnauthorized {
			if identity := identityKey(outbound); identity != "" {
				logger.Info("rbac rejected identity", slog.String("identity", identity))
			} else {
				logger.Info("rbac rejected request with no identity or no key")
			}
		}
	default:
		logger.Error("error received from rbac service", slog.Int("status_code", resp.StatusCode))
	}

	return accessErr
}

// identityKey returns the credential stored under the identity header, if any.
func identityKey(header http.Header) string {
	if header == nil {
		return ""
	}
	return header.Get(rbacDomain.IdentityHeader)
}
