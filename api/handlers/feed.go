package handlers

import (
	"net/http"
	"strconv"

	"connectly/api/middleware"
	"connectly/services"

	"github.com/gin-gonic/gin"
)

var feedService = services.NewFeedService()

// GetFeed возвращает страницу ленты для зрителя (возможно анонимного).
// Невалидные числовые параметры деградируют к дефолтам, а не к ошибке.
func GetFeed(c *gin.Context) {
	viewer := middleware.ViewerFromContext(c)
	filter := c.Query("filter")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page = parsed
		}
	}

	size := services.DefaultPageSize
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil {
			size = parsed
		}
	}

	middleware.ObserveFeedRequest(services.NormalizeFilter(filter), viewer.Anonymous())

	feedPage, err := feedService.GetFeed(c.Request.Context(), viewer, filter, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feed"})
		return
	}

	c.JSON(http.StatusOK, feedPage)
}
