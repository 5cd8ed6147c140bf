package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/LoreKeep/controllers"
	"github.com/LoreKeep/initializers"
	"github.com/LoreKeep/middlewares"
	"github.com/LoreKeep/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	initializers.MigrateSchema()
	services.InitPresenterService()
	services.InitSessionService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{

		// lore routes
		auth.GET("/communities/:community_id/lore", controllers.GetCurrentLore)
		auth.GET("/communities/:community_id/lore/history", controllers.GetLoreHistory)
		auth.GET("/communities/:community_id/lore/submissions/pending", controllers.GetPendingLoreSubmissions)
		auth.POST("/communities/:community_id/lore/submissions", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitLore)
		auth.POST("/lore/submissions/:submission_id/decision", controllers.DecideLoreSubmission)

		// moment routes
		auth.GET("/communities/:community_id/moments", controllers.GetMoments)
		auth.GET("/communities/:community_id/moments/random", controllers.GetRandomMoment)
		auth.GET("/communities/:community_id/moments/submissions/pending", controllers.GetPendingMomentSubmissions)
		auth.POST("/communities/:community_id/moments/submissions", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitMoment)
		auth.POST("/moments/submissions/:submission_id/decision", controllers.DecideMomentSubmission)

		// paginated view sessions
		auth.POST("/communities/:community_id/views", controllers.OpenView)
		auth.PATCH("/views/:session_id/page", controllers.TurnViewPage)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/communities/:community_id/config", controllers.GetCommunityConfig)
			admin.PATCH("/communities/:community_id/config", controllers.UpdateCommunityConfig)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
