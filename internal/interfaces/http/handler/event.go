package handler

import (
	"github.com/gin-gonic/gin"
	appshelf "github.com/shelflog/backend/internal/application/shelf"
)

// IdempotencyKeyHeader deduplicates retried submissions
const IdempotencyKeyHeader = "Idempotency-Key"

// EventHandler records shelf events
type EventHandler struct {
	BaseHandler
	submissions *appshelf.SubmissionService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(submissions *appshelf.SubmissionService) *EventHandler {
	return &EventHandler{submissions: submissions}
}

// Submit godoc
// @Summary      Record a shelf event
// @Description  Append one event for the caller. count is optional free text; non-numeric text is ignored.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body SubmitEventRequest true "Event form"
// @Param        Idempotency-Key header string false "Deduplicates retries"
// @Success      201 {object} dto.Response{data=EventResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /events [post]
func (h *EventHandler) Submit(c *gin.Context) {
	profile, err := currentProfile(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	event, err := h.submissions.Submit(c.Request.Context(), profile, appshelf.SubmitInput{
		ItemID:         req.ItemUUID(),
		Action:         req.Action,
		RawCount:       string(req.Count),
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toEventResponse(event))
}
