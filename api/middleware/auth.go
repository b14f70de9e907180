package middleware

import (
	"net/http"
	"strings"

	"connectly/services"

	"github.com/gin-gonic/gin"
)

var userService = services.NewUserService()

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthMiddleware - обязательная аутентификация по Bearer токену
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		user, err := userService.CheckToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("is_admin", user.IsAdmin)
		c.Next()
	}
}

// OptionalAuthMiddleware - опциональная аутентификация.
// Без токена (или с невалидным токеном) запрос идет дальше как анонимный.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if user, err := userService.CheckToken(c.Request.Context(), token); err == nil {
				c.Set("user_id", user.ID)
				c.Set("is_admin", user.IsAdmin)
			}
		}
		c.Next()
	}
}

// ViewerFromContext извлекает зрителя из контекста запроса.
// Отсутствие user_id означает анонимного зрителя.
func ViewerFromContext(c *gin.Context) services.Viewer {
	if userID, exists := c.Get("user_id"); exists {
		return services.Viewer{ID: userID.(int64)}
	}
	return services.AnonymousViewer
}
