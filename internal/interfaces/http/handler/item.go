package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/shelflog/backend/internal/application/catalog"
)

// ItemHandler serves the catalog for the event form
type ItemHandler struct {
	BaseHandler
	itemService *appcatalog.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *appcatalog.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List godoc
// @Summary      List items
// @Description  Every catalog item sorted by name
// @Tags         items
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ItemResponse}
// @Security     BearerAuth
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toItemResponses(items))
}
