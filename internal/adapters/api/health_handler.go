package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdialog.app/internal/ports"
)

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /api/health. Any unhealthy component fails the check.
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	components := s.healthChecker.CheckAll(c.Request.Context())

	response := HealthResponse{Status: "healthy", Components: components}
	for _, component := range components {
		switch component.Status {
		case "unhealthy":
			response.Status = "unhealthy"
		case "degraded":
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}
