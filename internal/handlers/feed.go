package handlers

import (
	"net/http"
	"strings"

	"sonar/internal/config"
	"sonar/internal/monitoring"
	"sonar/internal/pagination"
	"sonar/internal/services"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the multi-author feeds: the home timeline, the mention
// inbox and hashtag listings.
type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// Home is the viewer's global timeline: own pings plus followed authors,
// newest first.
func (h *FeedHandler) Home(c *gin.Context) {
	q := services.HomeTimeline(CurrentUser(c))
	pings, next, err := pagination.Pings(q, c.Query("cursor"), false, config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	monitoring.TimelineFetches.WithLabelValues("home").Inc()
	c.JSON(http.StatusOK, ListResponse{Results: pingListJSON(pings), Next: next})
}

// Mentions lists pings mentioning the viewer. Blocked authors are filtered
// out here just like in every other feed.
func (h *FeedHandler) Mentions(c *gin.Context) {
	q := services.MentionsTimeline(CurrentUser(c))
	pings, next, err := pagination.Pings(q, c.Query("cursor"), false, config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	monitoring.TimelineFetches.WithLabelValues("mentions").Inc()
	c.JSON(http.StatusOK, ListResponse{Results: pingListJSON(pings), Next: next})
}

// Hashtag lists pings carrying the tag. Lookup is by lowercased name, same
// normalization the extractor applies on write.
func (h *FeedHandler) Hashtag(c *gin.Context) {
	name := strings.ToLower(c.Param("name"))

	q := services.HashtagTimeline(name, CurrentUser(c))
	pings, next, err := pagination.Pings(q, c.Query("cursor"), false, config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	monitoring.TimelineFetches.WithLabelValues("hashtag").Inc()
	c.JSON(http.StatusOK, ListResponse{Results: pingListJSON(pings), Next: next})
}
