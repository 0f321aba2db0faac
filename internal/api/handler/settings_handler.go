package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babithbhoop/sparklespace/internal/api/dto"
	"github.com/babithbhoop/sparklespace/internal/domain"
	"github.com/babithbhoop/sparklespace/internal/sync"
)

// SettingsHandler handles business settings requests.
type SettingsHandler struct {
	logger *slog.Logger
	coord  *sync.Coordinator
}

// NewSettingsHandler creates a new SettingsHandler instance.
func NewSettingsHandler(deps *Dependencies) *SettingsHandler {
	return &SettingsHandler{logger: deps.Logger, coord: deps.Coordinator}
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.coord.Settings())
}

// UpdateSettings handles PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.HourlyRate != nil && *req.HourlyRate <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "hourlyRate must be positive"})
		return
	}

	h.coord.UpdateSettings(func(s *domain.Settings) {
		if req.HourlyRate != nil {
			s.HourlyRate = *req.HourlyRate
		}
		if req.StripeKey != nil {
			s.StripeKey = *req.StripeKey
		}
		if req.EmailServiceID != nil {
			s.EmailServiceID = *req.EmailServiceID
		}
		if req.EmailTemplateID != nil {
			s.EmailTemplateID = *req.EmailTemplateID
		}
		if req.EmailPublicKey != nil {
			s.EmailPublicKey = *req.EmailPublicKey
		}
	})

	h.logger.Info("Settings updated")
	c.JSON(http.StatusOK, h.coord.Settings())
}
