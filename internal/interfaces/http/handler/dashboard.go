package handler

import (
	"github.com/gin-gonic/gin"
	appdashboard "github.com/shelflog/backend/internal/application/dashboard"
	"github.com/shelflog/backend/internal/interfaces/http/dto"
)

// DashboardHandler serves the role-shaped dashboard
type DashboardHandler struct {
	BaseHandler
	dashboard *appdashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *appdashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get godoc
// @Summary      Dashboard
// @Description  The caller's feed; managers also get the store feed and trends
// @Tags         dashboard
// @Produce      json
// @Param        user_page  query int false "Page of the caller's feed"
// @Param        store_page query int false "Page of the store feed (managers)"
// @Success      200 {object} dto.Response{data=DashboardResponse}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	profile, err := currentProfile(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req dto.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.dashboard.Load(c.Request.Context(), profile, appdashboard.LoadInput{
		UserPage:  req.UserPage,
		StorePage: req.StorePage,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := DashboardResponse{
		Profile:  toProfileResponse(result.Profile),
		UserFeed: toFeedPageResponse(result.UserFeed),
	}
	if result.StoreFeed != nil {
		store := toFeedPageResponse(result.StoreFeed)
		resp.StoreFeed = &store
	}
	if result.Trends != nil {
		trends := toTrendsResponse(result.Trends)
		resp.Trends = &trends
	}
	h.Success(c, resp)
}
