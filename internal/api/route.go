package api

import (
	"SkillNest/internal/api/middleware"
	"SkillNest/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/:id", group.UserHandler.GetUser)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/me/info", group.UserHandler.GetMe)
				authGroup.PUT("/me/name", group.UserHandler.UpdateName)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.SkillPostHandler.List)
				authOptGroup.GET("/trending", group.SkillPostHandler.Trending)
				authOptGroup.GET("/search", group.SkillPostHandler.Search)
				authOptGroup.GET("/tags", group.SkillPostHandler.Tags)
				authOptGroup.GET("/tag/:tag", group.SkillPostHandler.ListByTag)
				authOptGroup.GET("/by-tags", group.SkillPostHandler.ListByTags)
				authOptGroup.GET("/owner/:id", group.SkillPostHandler.ListByOwner)
				authOptGroup.GET("/:id", group.SkillPostHandler.Get)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.SkillPostHandler.Create)
				authGroup.PUT("/:id", group.SkillPostHandler.Update)
				authGroup.DELETE("/:id", group.SkillPostHandler.Delete)
				authGroup.POST("/batch-delete", group.SkillPostHandler.DeleteBatch)

				authGroup.POST("/:id/like", group.PostActionHandler.ToggleLike)
				authGroup.POST("/:id/comments", group.PostActionHandler.AddComment)
				authGroup.PUT("/:id/comments/:commentId", group.PostActionHandler.UpdateComment)
				authGroup.DELETE("/:id/comments/:commentId", group.PostActionHandler.DeleteComment)
			}
		}

		socialGroup := apiGroup.Group("/social")
		socialGroup.Use(middleware.AuthMiddleware())
		{
			socialGroup.POST("/follow/:id", group.SocialHandler.Follow)
			socialGroup.DELETE("/follow/:id", group.SocialHandler.Unfollow)
			socialGroup.GET("/isfollow/:id", group.SocialHandler.IsFollowing)
			socialGroup.GET("/relations/:id", group.SocialHandler.FollowersAndFollowing)
			socialGroup.POST("/coins/:type", group.SocialHandler.AwardCoins)
			socialGroup.GET("/coins", group.SocialHandler.CoinBalance)
		}

		notifyGroup := apiGroup.Group("/notifications")
		{
			notifyGroup.GET("/ws", group.WSHandler.Connect)

			authGroup := notifyGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.NotificationHandler.List)
				authGroup.GET("/unread", group.NotificationHandler.ListUnread)
				authGroup.GET("/unread/count", group.NotificationHandler.UnreadCount)
				authGroup.POST("/:id/read", group.NotificationHandler.MarkRead)
				authGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
				authGroup.DELETE("/:id", group.NotificationHandler.Delete)
			}
		}
	}

	return r
}
