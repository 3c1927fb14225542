package handler

import (
	"github.com/gin-gonic/gin"
	appreport "github.com/shelflog/backend/internal/application/report"
)

// TrendHandler serves the store-wide trend projections
type TrendHandler struct {
	BaseHandler
	trends *appreport.TrendService
}

// NewTrendHandler creates a new TrendHandler
func NewTrendHandler(trends *appreport.TrendService) *TrendHandler {
	return &TrendHandler{trends: trends}
}

// Get godoc
// @Summary      Trend projections
// @Description  The six trend projections over every event. Managers only.
// @Tags         trends
// @Produce      json
// @Success      200 {object} dto.Response{data=TrendsResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trends [get]
func (h *TrendHandler) Get(c *gin.Context) {
	profile, err := currentProfile(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.trends.Trends(c.Request.Context(), profile)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTrendsResponse(result))
}
