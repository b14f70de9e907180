package handlers

import (
	"net/http"
	"strconv"

	"connectly/services"

	"github.com/gin-gonic/gin"
)

var followService = services.NewFollowService()

// FollowUser подписывает текущего пользователя на другого
func FollowUser(c *gin.Context) {
	followedID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := followService.Follow(c.Request.Context(), userID.(int64), followedID); err != nil {
		writeServiceError(c, err)
		return
	}

	// Пуш подписанному, если он сейчас онлайн
	_ = services.SendWsNotify(followedID, "info", "You have a new follower")

	c.JSON(http.StatusCreated, gin.H{"message": "Followed successfully", "followed_id": followedID})
}

// UnfollowUser убирает подписку
func UnfollowUser(c *gin.Context) {
	followedID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := followService.Unfollow(c.Request.Context(), userID.(int64), followedID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// GetFollowing возвращает список подписок текущего пользователя
func GetFollowing(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	users, err := followService.GetFollowing(c.Request.Context(), userID.(int64))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": users})
}

// GetFollowers возвращает подписчиков текущего пользователя
func GetFollowers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	users, err := followService.GetFollowers(c.Request.Context(), userID.(int64))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": users})
}
