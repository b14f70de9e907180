package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func UserGet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := userService.GetUser(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": UserInfo{ID: user.ID, Username: user.Username}})
}
