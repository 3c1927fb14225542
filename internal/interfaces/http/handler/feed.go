package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	appfeed "github.com/shelflog/backend/internal/application/feed"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/interfaces/http/dto"
)

// FeedHandler serves the paginated event feeds. Every page carries an ETag
// built from the page parameters and the scope revision; a matching
// If-None-Match answers 304 without fetching rows.
type FeedHandler struct {
	BaseHandler
	feeds *appfeed.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feeds *appfeed.FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

type feedLoader func(ctx context.Context, profile *identity.Profile, q appfeed.FeedQuery) (*appfeed.FeedResult, error)

// UserFeed godoc
// @Summary      The caller's feed
// @Description  Events recorded by the caller, newest first
// @Tags         feeds
// @Produce      json
// @Param        page      query int false "Page number, from 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        If-None-Match header string false "ETag of a cached page"
// @Success      200 {object} dto.Response{data=[]FeedEventResponse}
// @Success      304
// @Security     BearerAuth
// @Router       /feeds/me [get]
func (h *FeedHandler) UserFeed(c *gin.Context) {
	h.serve(c, "user", h.feeds.UserFeed)
}

// StoreFeed godoc
// @Summary      Store-wide feed
// @Description  Every event in the store, newest first. Managers only.
// @Tags         feeds
// @Produce      json
// @Param        page      query int false "Page number, from 1"
// @Param        page_size query int false "Page size, default 25"
// @Param        If-None-Match header string false "ETag of a cached page"
// @Success      200 {object} dto.Response{data=[]FeedEventResponse}
// @Success      304
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /feeds/store [get]
func (h *FeedHandler) StoreFeed(c *gin.Context) {
	h.serve(c, "store", h.feeds.StoreFeed)
}

func (h *FeedHandler) serve(c *gin.Context, kind string, load feedLoader) {
	profile, err := currentProfile(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	page := max(req.Page, 1)

	result, err := load(c.Request.Context(), profile, appfeed.FeedQuery{
		Page:          page,
		PageSize:      req.PageSize,
		KnownRevision: knownRevision(c.GetHeader("If-None-Match"), kind, page, req.PageSize),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// User feeds differ per caller behind the same URL
	c.Header("Vary", "Authorization")
	c.Header("Cache-Control", "private, no-cache")
	c.Header("ETag", feedETag(kind, page, req.PageSize, result.Revision))
	if result.NotModified {
		c.Status(http.StatusNotModified)
		return
	}

	h.SuccessWithMeta(c, toFeedEventResponses(result.Page.Items), dto.NewPageMeta(result.Page, result.Revision))
}

func feedETag(kind string, page, size int, revision int64) string {
	return fmt.Sprintf(`"%s.%d.%d.%d"`, kind, page, size, revision)
}

// knownRevision extracts the revision of an If-None-Match entry issued for
// the same feed kind and page parameters
func knownRevision(header, kind string, page, size int) *int64 {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "W/")
		tag = strings.Trim(tag, `"`)
		parts := strings.Split(tag, ".")
		if len(parts) != 4 || parts[0] != kind {
			continue
		}
		p, err1 := strconv.Atoi(parts[1])
		s, err2 := strconv.Atoi(parts[2])
		rev, err3 := strconv.ParseInt(parts[3], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if p == page && s == size {
			return &rev
		}
	}
	return nil
}
