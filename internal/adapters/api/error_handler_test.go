package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdialog.app/pkg/errors"
)

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedDialog string
		exposesMessage bool
	}{
		{"Validation", errors.NewValidationError("days cannot be negative"), http.StatusBadRequest, "cant.get.forecast", true},
		{"UnknownIntent", errors.NewNotFoundError("unknown intent tides"), http.StatusNotFound, "cant.get.forecast", true},
		{"LocationNotFound", errors.NewLocationNotFoundError("no geolocation for Atlantis", nil).WithDetail("location", "Atlantis"), http.StatusUnprocessableEntity, "location.not.found", false},
		{"HorizonExceeded", errors.NewHorizonExceededError("beyond forecast", "Tuesday"), http.StatusUnprocessableEntity, "no.forecast", false},
		{"HistoricalDate", errors.NewHistoricalDateError("date is in the past"), http.StatusUnprocessableEntity, "cant.get.historical.forecast", false},
		{"MissingData", errors.NewMissingDataError("no sunrise"), http.StatusUnprocessableEntity, "do.not.know", false},
		{"ProviderAuth", errors.NewProviderAuthError("status 401", nil), http.StatusBadGateway, "not.paired", false},
		{"ExternalAPI", fmt.Errorf("handle current intent: %w", errors.NewExternalAPIError("timeout", nil)), http.StatusServiceUnavailable, "cant.get.forecast", false},
		{"Plain", fmt.Errorf("boom"), http.StatusInternalServerError, "cant.get.forecast", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &HTTPServerAdapter{}
			router := gin.New()
			router.Use(requestID())
			router.GET("/test", func(c *gin.Context) { server.handleError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			require.Len(t, response.Dialogs, 1)
			assert.Equal(t, tt.expectedDialog, response.Dialogs[0].Name)
			assert.NotEmpty(t, response.RequestID)
			if tt.exposesMessage {
				assert.NotEmpty(t, response.Error)
			} else {
				assert.Empty(t, response.Error)
			}
		})
	}
}

func TestHTTPServerAdapter_HandleError_DialogData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{}
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		server.handleError(c, errors.NewHorizonExceededError("beyond forecast", "Tuesday"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Tuesday", response.Dialogs[0].Data["day"])
}
