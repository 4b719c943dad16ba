package handlers

import (
	"net/http"

	"sonar/internal/config"
	"sonar/internal/monitoring"
	"sonar/internal/pagination"
	"sonar/internal/services"
	"sonar/internal/utils"

	"github.com/gin-gonic/gin"
)

type PingHandler struct{}

func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

type pingRequest struct {
	Text string `json:"text"`
}

func (h *PingHandler) Create(c *gin.Context) {
	var req pingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ping, err := services.CreatePing(CurrentUser(c), req.Text, nil)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	monitoring.PingsPosted.Inc()
	c.JSON(http.StatusCreated, pingJSON(ping))
}

// Detail serves a single ping by id. Deliberately never block-filtered:
// blocking hides authors from feeds, it does not revoke access to a ping
// somebody holds a link to.
func (h *PingHandler) Detail(c *gin.Context) {
	ping, err := services.GetPing(utils.StringToUint(c.Param("id")))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pingJSON(ping))
}

func (h *PingHandler) Update(c *gin.Context) {
	ping, err := services.GetPing(utils.StringToUint(c.Param("id")))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	var req pingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := services.EditPing(CurrentUser(c), ping, req.Text); err != nil {
		WriteServiceError(c, err)
		return
	}

	// Reload so the edited timestamp reflects this write
	ping, err = services.GetPing(ping.ID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pingJSON(ping))
}

func (h *PingHandler) Delete(c *gin.Context) {
	ping, err := services.GetPing(utils.StringToUint(c.Param("id")))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	if err := services.DeletePing(CurrentUser(c), ping); err != nil {
		WriteServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reply creates a ping whose parent is this one. This is the official way
// for frontends to reply; POSTing /pings cannot set a parent.
func (h *PingHandler) Reply(c *gin.Context) {
	parent, err := services.GetPing(utils.StringToUint(c.Param("id")))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	var req pingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ping, err := services.CreatePing(CurrentUser(c), req.Text, &parent.ID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	monitoring.PingsPosted.Inc()
	c.JSON(http.StatusCreated, pingJSON(ping))
}

// Replies lists direct replies oldest first, the one ascending feed.
func (h *PingHandler) Replies(c *gin.Context) {
	parent, err := services.GetPing(utils.StringToUint(c.Param("id")))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	q := services.Replies(parent.ID)
	pings, next, err := pagination.Pings(q, c.Query("cursor"), true, config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Results: pingListJSON(pings), Next: next})
}
