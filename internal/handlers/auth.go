package handlers

import (
	"net/http"

	"sonar/internal/monitoring"
	"sonar/internal/services"
	"sonar/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetToken exchanges credentials for the user's API token. The same token is
// returned on every call; there is no rotation endpoint.
func (h *AuthHandler) GetToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := services.GetUserByUsername(req.Username)
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
		JSONError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		monitoring.LoginFailure.WithLabelValues("bad_password").Inc()
		JSONError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := services.IssueOrFetchToken(user)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	monitoring.LoginSuccess.Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}
