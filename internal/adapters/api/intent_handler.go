package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdialog.app/internal/core/dialog"
	"weatherdialog.app/internal/core/forecast"
	"weatherdialog.app/internal/core/intent"
	"weatherdialog.app/internal/core/weather"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// IntentQuery is the query string of an intent request
type IntentQuery struct {
	Utterance string `form:"utterance" binding:"max=1000"`
	Location  string `form:"location" binding:"max=200"`
	Language  string `form:"lang" binding:"language"`
	Unit      string `form:"unit" binding:"unit"`
	Aspect    string `form:"aspect" binding:"aspect"`
	Timeframe string `form:"timeframe" binding:"omitempty,oneof=current hourly daily"`
	Days      int    `form:"days" binding:"omitempty,min=1"`
}

// Request converts the query into an intent request
func (q IntentQuery) Request() intent.Request {
	return intent.Request{
		Utterance: q.Utterance,
		Location:  q.Location,
		Language:  q.Language,
		Unit:      q.Unit,
		Aspect:    q.Aspect,
		Timeframe: forecast.Timeframe(q.Timeframe),
		Days:      q.Days,
	}
}

// IntentResponse is the body of a handled intent
type IntentResponse struct {
	Intent    string          `json:"intent"`
	RequestID string          `json:"request_id"`
	Dialogs   []dialog.Dialog `json:"dialogs"`
}

// IntentListResponse lists the intents the service answers
type IntentListResponse struct {
	Intents []string `json:"intents"`
}

// listIntents handles GET /api/intents
func (s *HTTPServerAdapter) listIntents(c *gin.Context) {
	c.JSON(http.StatusOK, IntentListResponse{Intents: weather.Intents()})
}

// handleIntent handles GET /api/intents/:intent requests
func (s *HTTPServerAdapter) handleIntent(c *gin.Context) {
	name := c.Param("intent")
	requestID := c.GetString(requestIDKey)

	var query IntentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("invalid intent query: "+err.Error()))
		return
	}

	s.logger.Debug("Intent request received",
		ports.F("request_id", requestID),
		ports.F("intent", name),
		ports.F("location", query.Location))

	response, err := s.weatherUseCase.Handle(c.Request.Context(), name, query.Request())
	if err != nil {
		s.logger.Warn("Intent request failed",
			ports.F("request_id", requestID),
			ports.F("intent", name),
			ports.F("error", err))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, IntentResponse{
		Intent:    response.Intent,
		RequestID: requestID,
		Dialogs:   response.Dialogs,
	})
}
