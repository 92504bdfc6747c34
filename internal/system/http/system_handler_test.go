package http

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
	rbacHttp "github.com/allisson/ros/internal/rbac/http"
	systemDomain "github.com/allisson/ros/internal/system/domain"
	"github.com/allisson/ros/internal/system/usecase/mocks"
)

const inventoryID = "ee0b9978-fe1b-4191-8408-cbadbd47f7a3"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func orgCredential(orgID string) rbacDomain.Credential {
	doc := `{"identity":{"account_number":"12345","type":"User","org_id":"` + orgID +
		`","internal":{"org_id":"` + orgID + `"}}}`
	return rbacDomain.Credential(base64.StdEncoding.EncodeToString([]byte(doc)))
}

// setupRouter mounts the handler behind a stand-in for the access gate that
// stores credential in the request context.
func setupRouter(useCase *mocks.MockSystemUseCase, credential rbacDomain.Credential) *gin.Engine {
	handler := NewSystemHandler(useCase, createTestLogger())
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if credential != "" {
			c.Request = c.Request.WithContext(rbacHttp.WithCredential(c.Request.Context(), credential))
		}
		c.Next()
	})
	router.GET("/api/ros/v1/is_configured", handler.IsConfiguredHandler)
	router.GET("/api/ros/v1/systems/:inventory_id", handler.GetHandler)
	router.GET("/api/ros/v1/systems/:inventory_id/history", handler.HistoryHandler)
	router.POST("/api/ros/v1/rating", handler.RateHandler)
	return router
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postRating(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ros/v1/rating", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSystemHandler_IsConfiguredHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("IsConfigured", mock.Anything, "000001").
			Return(&systemDomain.Stats{Count: 1, WithSuggestions: 1, WaitingForData: 0}, nil).Once()

		w := serve(setupRouter(useCase, orgCredential("000001")), "/api/ros/v1/is_configured")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":1,"systems_stats":{"with_suggestions":1,"waiting_for_data":0}}`, w.Body.String())
		useCase.AssertExpectations(t)
	})

	t.Run("Error_MissingIdentity", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := serve(setupRouter(useCase, ""), "/api/ros/v1/is_configured")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Identity not found in request."}`, w.Body.String())
		useCase.AssertNotCalled(t, "IsConfigured", mock.Anything, mock.Anything)
	})

	t.Run("Error_UndecodableIdentity", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := serve(setupRouter(useCase, "not-an-identity"), "/api/ros/v1/is_configured")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "bad_request")
	})

	t.Run("Error_Database", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("IsConfigured", mock.Anything, "000001").Return(nil, assert.AnError).Once()

		w := serve(setupRouter(useCase, orgCredential("000001")), "/api/ros/v1/is_configured")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestSystemHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		osName := "RHEL 8.4"
		reportDate := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("Get", mock.Anything, "000001", uuid.MustParse(inventoryID)).Return(&systemDomain.System{
			InventoryID:     uuid.MustParse(inventoryID),
			OrgID:           "000001",
			DisplayName:     "host-a",
			OperatingSystem: &osName,
			State:           systemDomain.StateIdling,
			ReportDate:      &reportDate,
		}, nil).Once()

		w := serve(setupRouter(useCase, orgCredential("000001")), "/api/ros/v1/systems/"+inventoryID)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"inventory_id": "`+inventoryID+`",
			"display_name": "host-a",
			"os": "RHEL 8.4",
			"state": "Idling",
			"report_date": "2026-10-18T00:00:00Z",
			"rating": null
		}`, w.Body.String())
	})

	t.Run("Error_OtherOrganization", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("Get", mock.Anything, "000002", uuid.MustParse(inventoryID)).
			Return(nil, systemDomain.ErrSystemNotFound).Once()

		w := serve(setupRouter(useCase, orgCredential("000002")), "/api/ros/v1/systems/"+inventoryID)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("Error_InvalidInventoryID", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := serve(setupRouter(useCase, orgCredential("000001")), "/api/ros/v1/systems/cbadbd47f7a3")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "must be a valid UUID")
		useCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSystemHandler_RateHandler(t *testing.T) {
	id := uuid.MustParse(inventoryID)

	t.Run("Success_Created", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("Rate", mock.Anything, "000001", id, systemDomain.RatingNegative, "").
			Return(&systemDomain.SystemRating{InventoryID: id, Rating: systemDomain.RatingNegative}, nil).Once()

		w := postRating(setupRouter(useCase, orgCredential("000001")),
			`{"inventory_id":"`+inventoryID+`","rating":-1}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"inventory_id":"`+inventoryID+`","rating":-1}`, w.Body.String())
		useCase.AssertExpectations(t)
	})

	t.Run("Success_RecordsUsername", func(t *testing.T) {
		doc := `{"identity":{"org_id":"000001","type":"User","user":{"username":"jdoe"}}}`
		credential := rbacDomain.Credential(base64.StdEncoding.EncodeToString([]byte(doc)))
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("Rate", mock.Anything, "000001", id, systemDomain.RatingPositive, "jdoe").
			Return(&systemDomain.SystemRating{InventoryID: id, Rating: systemDomain.RatingPositive}, nil).Once()

		w := postRating(setupRouter(useCase, credential), `{"inventory_id":"`+inventoryID+`","rating":"1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := postRating(setupRouter(useCase, orgCredential("000001")), `inventory_id`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"bad_request","message":"Decoding JSON has failed."}`, w.Body.String())
		useCase.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NonNumericRating", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := postRating(setupRouter(useCase, orgCredential("000001")),
			`{"inventory_id":"`+inventoryID+`","rating":"-1;start-sleep -s 15 #"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Decoding JSON has failed.")
	})

	t.Run("Error_InvalidRatingChoice", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := postRating(setupRouter(useCase, orgCredential("000001")),
			`{"inventory_id":"`+inventoryID+`","rating":4}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "must be one of -1, 0, 1")
		useCase.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_OtherOrganization", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("Rate", mock.Anything, "000002", id, systemDomain.RatingNegative, "").
			Return(nil, systemDomain.ErrSystemNotFound).Once()

		w := postRating(setupRouter(useCase, orgCredential("000002")),
			`{"inventory_id":"`+inventoryID+`","rating":"-1"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("Error_InventoryIDNotUUID", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := postRating(setupRouter(useCase, orgCredential("000001")), `{"inventory_id":"cbadbd47f7a3","rating":1}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		useCase.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingIdentity", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := postRating(setupRouter(useCase, ""), `{"inventory_id":"`+inventoryID+`","rating":1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Identity not found in request."}`, w.Body.String())
	})
}

func TestSystemHandler_HistoryHandler(t *testing.T) {
	id := uuid.MustParse(inventoryID)

	t.Run("Success", func(t *testing.T) {
		reportDate := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("History", mock.Anything, "000001", id).Return([]systemDomain.HistoryEntry{
			{State: systemDomain.StateOversized, ReportDate: reportDate},
		}, nil).Once()

		w := serve(setupRouter(useCase, orgCredential("000001")), "/api/ros/v1/systems/"+inventoryID+"/history")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"inventory_id": "`+inventoryID+`",
			"meta": {"count": 1},
			"data": [{"state": "Oversized", "report_date": "2026-10-17T00:00:00Z"}]
		}`, w.Body.String())
	})

	t.Run("Error_OtherOrganization", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}
		useCase.On("History", mock.Anything, "000002", id).Return(nil, systemDomain.ErrSystemNotFound).Once()

		w := serve(setupRouter(useCase, orgCredential("000002")), "/api/ros/v1/systems/"+inventoryID+"/history")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidInventoryID", func(t *testing.T) {
		useCase := &mocks.MockSystemUseCase{}

		w := serve(setupRouter(useCase, orgCredential("000001")), "/api/ros/v1/systems/cbadbd47f7a3/history")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
