package http

import (
	"log/slog"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/ros/internal/httputil"
	"github.com/allisson/ros/internal/metrics"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
	rbacUseCase "github.com/allisson/ros/internal/rbac/usecase"
)

// RequirePermissions guards a route group with the access gate.
//
// A request passes when the gate returns a decision. Otherwise the gate error is
// rendered through httputil.HandleErrorGin, which yields {"message": "..."} with
// the status carried by the error, and the chain is aborted.
//
// The decision is stored under metrics.DecisionKey for the HTTP metrics
// middleware and, with the credential, in the request context for handlers.
//
// Usage:
//
//	api := router.Group("/api/ros/v1")
//	api.Use(RequirePermissions(gate, "ros", rbacDomain.NewPermissionSet("ros:*:*", "ros:*:read"), logger))
func RequirePermissions(
	gate rbacUseCase.AccessUseCase,
	application rbacDomain.Application,
	permissions rbacDomain.PermissionSet,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, _ := ExtractCredential(c.Request.Header)
		path := c.Request.URL.Path

		requestLogger := logger
		if id := requestid.Get(c); id != "" {
			requestLogger = logger.With(slog.String("request_id", id))
		}

		decision, err := gate.EnsureAuthorized(c.Request.Context(), &rbacDomain.CheckInput{
			Permissions: permissions,
			Application: application,
			Path:        path,
			Credential:  credential,
			Logger:      requestLogger,
		})
		if err != nil {
			c.Set(metrics.DecisionKey, "")
			httputil.HandleErrorGin(c, err, requestLogger)
			c.Abort()
			return
		}

		c.Set(metrics.DecisionKey, string(decision))
		ctx := WithDecision(c.Request.Context(), decision)
		if credential != "" {
			ctx = WithCredential(ctx, credential)
		}
		c.Request = c.Request.WithContext(ctx)

		requestLogger.Debug("access granted",
			slog.String("path", path),
			slog.String("decision", string(decision)))

		c.Next()
	}
}
