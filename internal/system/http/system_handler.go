// Package http provides HTTP handlers for systems and their ratings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ros/internal/httputil"
	"github.com/allisson/ros/internal/identity"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
	rbacHttp "github.com/allisson/ros/internal/rbac/http"
	"github.com/allisson/ros/internal/system/http/dto"
	systemUseCase "github.com/allisson/ros/internal/system/usecase"
	customValidation "github.com/allisson/ros/internal/validation"
)

var (
	// ReadPermissions grant access to every read-only system endpoint.
	ReadPermissions = rbacDomain.NewPermissionSet("ros:*:*", "ros:*:read")
	// WritePermissions grant access to endpoints that change stored data.
	WritePermissions = rbacDomain.NewPermissionSet("ros:*:*", "ros:*:write")
)

// SystemHandler handles HTTP requests for systems.
// Routes are expected to sit behind rbacHttp.RequirePermissions.
type SystemHandler struct {
	systemUseCase systemUseCase.SystemUseCase
	logger        *slog.Logger
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(systemUseCase systemUseCase.SystemUseCase, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		systemUseCase: systemUseCase,
		logger:        logger,
	}
}

// IsConfiguredHandler reports how many systems the caller's organization has.
// GET /api/ros/v1/is_configured
func (h *SystemHandler) IsConfiguredHandler(c *gin.Context) {
	caller, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	stats, err := h.systemUseCase.IsConfigured(c.Request.Context(), caller.Organization())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToResponse(stats))
}

// GetHandler returns a single system of the caller's organization.
// GET /api/ros/v1/systems/:inventory_id
func (h *SystemHandler) GetHandler(c *gin.Context) {
	req := dto.GetSystemRequest{InventoryID: c.Param("inventory_id")}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	caller, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	system, err := h.systemUseCase.Get(c.Request.Context(), caller.Organization(), req.ParsedInventoryID())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSystemToResponse(system))
}

// HistoryHandler lists past reports of a system of the caller's organization.
// GET /api/ros/v1/systems/:inventory_id/history
func (h *SystemHandler) HistoryHandler(c *gin.Context) {
	req := dto.GetSystemRequest{InventoryID: c.Param("inventory_id")}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	caller, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	inventoryID := req.ParsedInventoryID()
	entries, err := h.systemUseCase.History(c.Request.Context(), caller.Organization(), inventoryID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHistoryToResponse(inventoryID, entries))
}

// RateHandler stores the caller's rating of a system's suggestions.
// POST /api/ros/v1/rating
func (h *SystemHandler) RateHandler(c *gin.Context) {
	caller, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	var req dto.RateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleDecodeErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	inventoryID, err := req.LookupInventoryID()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	stored, err := h.systemUseCase.Rate(
		c.Request.Context(),
		caller.Organization(),
		inventoryID,
		req.ParsedRating(),
		ratedBy(caller),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRatingToResponse(stored))
}

func ratedBy(caller *identity.Identity) string {
	if caller.User == nil {
		return ""
	}
	return caller.User.Username
}

// callerIdentity decodes the credential stored by the access gate, writing the
// error response itself when it cannot.
func (h *SystemHandler) callerIdentity(c *gin.Context) (*identity.Identity, bool) {
	credential, ok := rbacHttp.GetCredential(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, rbacDomain.NewMissingCredentialError(), h.logger)
		return nil, false
	}

	caller, err := identity.Decode(string(credential))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}
	return caller, true
}
