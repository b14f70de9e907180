package routes

import (
	"connectly/api/handlers"
	"connectly/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1/")

	// Публичные endpoint'ы: аутентификация не обязательна,
	// токен (если есть) определяет зрителя
	public := api.Group("", middleware.OptionalAuthMiddleware())
	{
		public.POST("auth/register", handlers.Register)
		public.POST("auth/login", handlers.Login)
		public.GET("users/:user_id", handlers.UserGet)

		public.GET("feed", handlers.GetFeed)
		public.GET("posts", handlers.ListPosts)
		public.GET("posts/:post_id", handlers.GetPost)
		public.GET("posts/:post_id/comments", handlers.ListComments)
	}

	// Endpoint'ы, требующие идентифицированного пользователя
	private := api.Group("", middleware.AuthMiddleware())
	{
		private.POST("auth/logout", handlers.Logout)

		private.POST("posts", handlers.CreatePost)
		private.PUT("posts/:post_id", handlers.UpdatePost)
		private.DELETE("posts/:post_id", handlers.DeletePost)

		private.POST("posts/:post_id/comments", handlers.CreateComment)
		private.PUT("comments/:comment_id", handlers.UpdateComment)
		private.DELETE("comments/:comment_id", handlers.DeleteComment)

		private.POST("posts/:post_id/like", handlers.LikePost)
		private.DELETE("posts/:post_id/like", handlers.UnlikePost)
		private.POST("comments/:comment_id/like", handlers.LikeComment)
		private.DELETE("comments/:comment_id/like", handlers.UnlikeComment)

		private.POST("users/:user_id/follow", handlers.FollowUser)
		private.DELETE("users/:user_id/follow", handlers.UnfollowUser)
		private.GET("following", handlers.GetFollowing)
		private.GET("followers", handlers.GetFollowers)

		private.GET("ws/feed", handlers.WSFeedHandler)
	}

	return api
}
