package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdialog.app/internal/core/dialog"
	"weatherdialog.app/pkg/errors"
)

// ErrorResponse carries the dialog explaining a failed request. Error is set
// for failures the caller can fix.
type ErrorResponse struct {
	RequestID string          `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Dialogs   []dialog.Dialog `json:"dialogs"`
}

// statusFor maps an error kind to the HTTP status it is answered with
func statusFor(errType errors.ErrorType) int {
	switch errType {
	case errors.ValidationError:
		return http.StatusBadRequest
	case errors.NotFoundError:
		return http.StatusNotFound
	case errors.LocationNotFoundError, errors.HorizonExceededError,
		errors.HistoricalDateError, errors.MissingDataError:
		return http.StatusUnprocessableEntity
	case errors.ProviderAuthError:
		return http.StatusBadGateway
	case errors.ExternalAPIError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError answers with the error dialog and the matching status
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	errType := errors.TypeOf(err)

	response := ErrorResponse{
		RequestID: c.GetString(requestIDKey),
		Dialogs:   []dialog.Dialog{dialog.ForError(err)},
	}
	switch errType {
	case errors.ValidationError, errors.NotFoundError:
		response.Error = err.Error()
	}

	c.JSON(statusFor(errType), response)
}
