package router

import (
	"sonar/internal/handlers"
	"sonar/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	pingHandler := handlers.NewPingHandler()
	feedHandler := handlers.NewFeedHandler()

	// Public routes. Single-ping and per-user reads stay reachable without a
	// token; blocking is a feed filter, not access control.
	r.POST("/users", userHandler.Create)
	r.GET("/users/:username", userHandler.Profile)
	r.GET("/users/:username/timeline", userHandler.Timeline)
	r.GET("/users/:username/follow-stats", userHandler.FollowStats)
	r.GET("/pings/:id", pingHandler.Detail)
	r.GET("/pings/:id/replies", pingHandler.Replies)
	r.GET("/hashtags/:name", feedHandler.Hashtag)
	r.POST("/get-token", authHandler.GetToken)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.PATCH("/users/:username", userHandler.Update)
		authorized.DELETE("/users/:username", userHandler.Delete)
		authorized.POST("/users/:username/follow", userHandler.Follow)
		authorized.POST("/users/:username/unfollow", userHandler.Unfollow)
		authorized.POST("/users/:username/block", userHandler.Block)
		authorized.POST("/users/:username/unblock", userHandler.Unblock)
		authorized.GET("/users/following", userHandler.Following)
		authorized.GET("/users/followed-by", userHandler.FollowedBy)

		authorized.POST("/pings", pingHandler.Create)
		authorized.PATCH("/pings/:id", pingHandler.Update)
		authorized.DELETE("/pings/:id", pingHandler.Delete)
		authorized.POST("/pings/:id/reply", pingHandler.Reply)

		authorized.GET("/timeline", feedHandler.Home)
		authorized.GET("/mentions", feedHandler.Mentions)
	}
}
