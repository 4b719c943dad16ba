package handlers

import (
	"net/http"

	"sonar/internal/config"
	"sonar/internal/pagination"
	"sonar/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Blurb    string `json:"blurb"`
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Blurb    *string `json:"blurb"`
	Password *string `json:"password"`
}

// Create registers a user. The response carries the API token; no other
// endpoint ever echoes it back.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := services.CreateUser(req.Username, req.Password, req.Email, req.Blurb)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	token, err := services.IssueOrFetchToken(user)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	resp := gin.H{
		"username": user.Username,
		"email":    user.Email,
		"blurb":    user.Blurb,
		"token":    token,
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}

// Update patches profile fields. The username itself is immutable: a
// "username" key in the body is ignored rather than rejected, and the
// response shows the unchanged name.
func (h *UserHandler) Update(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	viewer := CurrentUser(c)
	if viewer.ID != user.ID {
		JSONError(c, http.StatusForbidden, "only the owner may modify this resource")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := services.UpdateProfile(user, req.Email, req.Blurb, req.Password); err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	viewer := CurrentUser(c)
	if viewer.ID != user.ID {
		JSONError(c, http.StatusForbidden, "only the owner may modify this resource")
		return
	}

	if err := services.DeleteUser(user); err != nil {
		WriteServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Follow subscribes the viewer to the named user. 201 on a new edge, 200
// when the edge already existed.
func (h *UserHandler) Follow(c *gin.Context) {
	followed, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	created, err := services.FollowUser(CurrentUser(c), followed)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"following": followed.Username})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	followed, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	if err := services.UnfollowUser(CurrentUser(c), followed); err != nil {
		WriteServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Block(c *gin.Context) {
	blocked, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	created, err := services.BlockUser(CurrentUser(c), blocked)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"blocking": blocked.Username})
}

func (h *UserHandler) Unblock(c *gin.Context) {
	blocked, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	if err := services.UnblockUser(CurrentUser(c), blocked); err != nil {
		WriteServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) FollowStats(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	following, followed, err := services.FollowStats(user)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following, "followed": followed})
}

// Timeline lists the named user's own pings, newest first. Reachable without
// authentication; the block filter only kicks in for a logged-in viewer.
func (h *UserHandler) Timeline(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	q := services.UserTimeline(user, CurrentUser(c))
	pings, next, err := pagination.Pings(q, c.Query("cursor"), false, config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Results: pingListJSON(pings), Next: next})
}

func (h *UserHandler) Following(c *gin.Context) {
	users, next, err := services.FollowingPage(CurrentUser(c), c.Query("cursor"), config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Results: userListJSON(users), Next: next})
}

func (h *UserHandler) FollowedBy(c *gin.Context) {
	users, next, err := services.FollowersPage(CurrentUser(c), c.Query("cursor"), config.PageSize())
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Results: userListJSON(users), Next: next})
}
