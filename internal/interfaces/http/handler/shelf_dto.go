package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	appfeed "github.com/shelflog/backend/internal/application/feed"
	appreport "github.com/shelflog/backend/internal/application/report"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/report"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shelflog/backend/internal/interfaces/http/dto"
)

// =====================
// Request DTOs
// =====================

// RawText accepts a JSON string or number and keeps its literal text.
// null and absent both decode to "".
type RawText string

// UnmarshalJSON implements json.Unmarshaler
func (t *RawText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = RawText(s)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*t = RawText(data)
	default:
		return errors.New("count must be a string or a number")
	}
	return nil
}

// SubmitEventRequest is the event form. Selection rules are enforced by the
// submission workflow, so item_id and action are not marked required here.
type SubmitEventRequest struct {
	ItemID string  `json:"item_id" binding:"omitempty,uuid"`
	Action string  `json:"action" binding:"max=32"`
	Count  RawText `json:"count"`
}

// ItemUUID parses ItemID; an empty selection is uuid.Nil
func (r SubmitEventRequest) ItemUUID() uuid.UUID {
	if r.ItemID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(r.ItemID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// =====================
// Response DTOs
// =====================

// ProfileResponse is the resolved identity of the caller
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsManager bool      `json:"is_manager"`
}

// ItemResponse is one selectable catalog item
type ItemResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Aisle    string    `json:"aisle"`
	Capacity *int      `json:"capacity,omitempty"`
}

// EventResponse is a recorded shelf event
type EventResponse struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ItemID      uuid.UUID `json:"item_id"`
	Action      string    `json:"action"`
	ActionLabel string    `json:"action_label"`
	Count       *int      `json:"count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedEventResponse is an event enriched for display
type FeedEventResponse struct {
	EventResponse
	ItemName     string `json:"item_name"`
	Aisle        string `json:"aisle"`
	UserName     string `json:"user_name"`
	ItemResolved bool   `json:"item_resolved"`
	UserResolved bool   `json:"user_resolved"`
}

// FeedPageResponse is one feed page with its pagination state, used inside the dashboard
type FeedPageResponse struct {
	Events []FeedEventResponse `json:"events"`
	Meta   *dto.Meta           `json:"meta"`
}

// TrendsResponse is the trend set and the revision it reflects
type TrendsResponse struct {
	report.TrendSet
	Revision   int64 `json:"revision"`
	EventCount int   `json:"event_count"`
	Cached     bool  `json:"cached"`
}

// DashboardResponse is the role-shaped composite view
type DashboardResponse struct {
	Profile   ProfileResponse   `json:"profile"`
	UserFeed  FeedPageResponse  `json:"user_feed"`
	StoreFeed *FeedPageResponse `json:"store_feed,omitempty"`
	Trends    *TrendsResponse   `json:"trends,omitempty"`
}

func toProfileResponse(p *identity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Role:      string(p.Role),
		IsManager: p.IsManager(),
	}
}

func toItemResponses(items []catalog.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Aisle:    item.Aisle,
			Capacity: item.Capacity,
		}
	}
	return out
}

func toEventResponse(e *shelf.ShelfEvent) EventResponse {
	return EventResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ItemID:      e.ItemID,
		Action:      string(e.Action),
		ActionLabel: e.Action.Label(),
		Count:       e.Count,
		CreatedAt:   e.CreatedAt,
	}
}

func toFeedEventResponses(events []shelf.EnrichedEvent) []FeedEventResponse {
	out := make([]FeedEventResponse, len(events))
	for i := range events {
		e := events[i]
		out[i] = FeedEventResponse{
			EventResponse: toEventResponse(&e.ShelfEvent),
			ItemName:      e.ItemName,
			Aisle:         e.Aisle,
			UserName:      e.UserName,
			ItemResolved:  e.ItemResolved,
			UserResolved:  e.UserResolved,
		}
	}
	return out
}

func toFeedPageResponse(r *appfeed.FeedResult) FeedPageResponse {
	return FeedPageResponse{
		Events: toFeedEventResponses(r.Page.Items),
		Meta:   dto.NewPageMeta(r.Page, r.Revision),
	}
}

func toTrendsResponse(r *appreport.TrendResult) TrendsResponse {
	return TrendsResponse{
		TrendSet:   r.Trends,
		Revision:   r.Revision,
		EventCount: r.EventCount,
		Cached:     r.Cached,
	}
}
