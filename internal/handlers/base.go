package handlers

import (
	"errors"
	"net/http"
	"time"

	"sonar/internal/middleware"
	"sonar/internal/models"
	"sonar/internal/pagination"
	"sonar/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUser returns the authenticated user, or nil on anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// JSONError writes the uniform error body
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// WriteServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a storage failure and surfaces as 500; nothing is
// retried or masked.
func WriteServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason, "field": vErr.Field})
	case errors.Is(err, services.ErrNotOwner):
		JSONError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, pagination.ErrBadCursor):
		JSONError(c, http.StatusBadRequest, err.Error())
	default:
		JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

// ListResponse is the envelope for every list endpoint.
type ListResponse struct {
	Results interface{} `json:"results"`
	Next    *string     `json:"next"`
}

// PingJSON is the wire form of a ping. Edited is elapsed whole seconds since
// creation, absent for never-edited pings and for edits inside the grace
// window.
type PingJSON struct {
	ID         uint      `json:"id"`
	User       string    `json:"user"`
	ReplyingTo *uint     `json:"replying_to"`
	Created    time.Time `json:"created"`
	Edited     *int64    `json:"edited"`
	Text       string    `json:"text"`
}

func pingJSON(p *models.Ping) PingJSON {
	return PingJSON{
		ID:         p.ID,
		User:       p.User.Username,
		ReplyingTo: p.ReplyingToID,
		Created:    p.CreatedAt,
		Edited:     p.EditedSeconds(),
		Text:       p.Text,
	}
}

func pingListJSON(pings []models.Ping) []PingJSON {
	out := make([]PingJSON, len(pings))
	for i := range pings {
		out[i] = pingJSON(&pings[i])
	}
	return out
}

// UserJSON is the public wire form of a user.
type UserJSON struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Blurb    string `json:"blurb"`
}

func userJSON(u *models.User) UserJSON {
	return UserJSON{
		Username: u.Username,
		Email:    u.Email,
		Blurb:    u.Blurb,
	}
}

func userListJSON(users []models.User) []UserJSON {
	out := make([]UserJSON, len(users))
	for i := range users {
		out[i] = userJSON(&users[i])
	}
	return out
}
