package httputil

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/ros/internal/errors"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "permission denied",
			err:          rbacDomain.NewPermissionDeniedError(),
			expectedCode: http.StatusForbidden,
			expectedBody: `{"message":"User does not have correct permissions to access the service."}`,
		},
		{
			name:         "missing identity",
			err:          rbacDomain.NewMissingCredentialError(),
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Identity not found in request."}`,
		},
		{
			name:         "upstream unauthorized",
			err:          rbacDomain.NewUpstreamStatusError(http.StatusUnauthorized),
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Unable to retrieve permissions."}`,
		},
		{
			name:         "upstream teapot keeps remote status",
			err:          rbacDomain.NewUpstreamStatusError(http.StatusTeapot),
			expectedCode: http.StatusTeapot,
			expectedBody: `{"message":"Error received from backend service."}`,
		},
		{
			name:         "wrapped access error",
			err:          apperrors.Wrap(rbacDomain.NewInvalidMethodError("TRACE"), "fetch"),
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: `{"message":"'TRACE' is not valid HTTP method."}`,
		},
		{
			name:         "not found",
			err:          apperrors.Wrap(apperrors.ErrNotFound, "system"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"not_found","message":"The requested resource was not found"}`,
		},
		{
			name:         "invalid input",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "bad org"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `{"error":"invalid_input","message":"bad org: invalid input"}`,
		},
		{
			name:         "unauthorized",
			err:          apperrors.ErrUnauthorized,
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"unauthorized","message":"Authentication is required"}`,
		},
		{
			name:         "forbidden",
			err:          apperrors.ErrForbidden,
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"forbidden","message":"You don't have permission to access this resource"}`,
		},
		{
			name:         "unavailable",
			err:          apperrors.Wrap(apperrors.ErrUnavailable, "database"),
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"error":"unavailable","message":"A dependency is temporarily unavailable"}`,
		},
		{
			name:         "unknown error hides details",
			err:          errors.New("pq: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"internal_error","message":"An internal error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, createTestLogger())

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, createTestLogger())

	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("missing inventory id"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"missing inventory id"}`, w.Body.String())
}

func TestHandleDecodeErrorGin(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleDecodeErrorGin(c, errors.New("invalid character 'i' looking for beginning of value"), createTestLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"Decoding JSON has failed."}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("inventory_id: must be a valid UUID."), createTestLogger())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"inventory_id: must be a valid UUID."}`, w.Body.String())
}
