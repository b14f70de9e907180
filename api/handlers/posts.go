package handlers

import (
	"net/http"
	"strconv"

	"connectly/api/middleware"
	"connectly/models"
	"connectly/services"

	"github.com/gin-gonic/gin"
)

var postService = services.NewPostService()

type CreatePostRequest struct {
	Title    string          `json:"title" binding:"required"`
	Content  string          `json:"content"`
	PostType string          `json:"post_type" binding:"required"`
	Metadata models.Metadata `json:"metadata"`
	Privacy  string          `json:"privacy"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Privacy *string `json:"privacy"`
}

// CreatePost создает новый пост через фабрику
func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, err := postService.CreatePost(c.Request.Context(), userID.(int64),
		req.PostType, req.Title, req.Content, req.Metadata, req.Privacy)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts возвращает видимые зрителю посты
func ListPosts(c *gin.Context) {
	viewer := middleware.ViewerFromContext(c)

	posts, err := postService.ListPosts(c.Request.Context(), viewer)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost возвращает пост с учетом видимости
func GetPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	viewer := middleware.ViewerFromContext(c)
	post, err := postService.GetPost(c.Request.Context(), viewer, postID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost обновляет пост (только автор)
func UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, err := postService.UpdatePost(c.Request.Context(), userID.(int64), postID, services.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
		Privacy: req.Privacy,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost удаляет пост (автор или администратор)
func DeletePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	admin := c.GetBool("is_admin")

	if err := postService.DeletePost(c.Request.Context(), userID.(int64), admin, postID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully", "post_id": postID})
}
