package main

import (
	"github.com/gin-gonic/gin"

	"stayhub-backend/internal/shared/middleware"
	"stayhub-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(c.Metrics))
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS([]string{"*"}))

	registerHealthRoutes(router, c)
	registerMetricsRoutes(router, c)

	api := router.Group("/api/v1")

	auth := middleware.AuthMiddleware(c.JWTManager)
	optionalAuth := middleware.OptionalAuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	// ===== AUTH =====
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.POST("/refresh", c.UserHandler.Refresh)
	}

	// ===== USERS =====
	users := api.Group("/users")
	{
		users.GET("/me", auth, c.UserHandler.Me)
		users.PUT("/me", auth, c.UserHandler.UpdateMe)
		users.PUT("/me/password", auth, c.UserHandler.ChangePassword)
		users.GET("/:id/reviews", optionalAuth, c.ReviewHandler.ListByAuthor)
		users.GET("/:id/posts", optionalAuth, c.PostHandler.ListByAuthor)
	}

	// ===== DESTINATIONS =====
	destinations := api.Group("/destinations")
	{
		destinations.GET("", optionalAuth, c.DestinationHandler.List)
		destinations.GET("/featured", c.DestinationHandler.ListFeatured)
		destinations.GET("/search", c.DestinationHandler.Search)
		destinations.GET("/:id", c.DestinationHandler.GetByID)
		destinations.GET("/:id/accommodations", optionalAuth, c.AccommodationHandler.ListByDestination)
		destinations.POST("", auth, admin, c.DestinationHandler.Create)
		destinations.PUT("/:id", auth, admin, c.DestinationHandler.Update)
		destinations.DELETE("/:id", auth, admin, c.DestinationHandler.Delete)
		destinations.POST("/:id/restore", auth, admin, c.DestinationHandler.Restore)
	}

	// ===== ACCOMMODATIONS =====
	accommodations := api.Group("/accommodations")
	{
		accommodations.GET("", optionalAuth, c.AccommodationHandler.List)
		accommodations.GET("/top-rated", c.AccommodationHandler.GetTopRated)
		accommodations.GET("/search", optionalAuth, c.AccommodationHandler.Search)
		accommodations.GET("/:id", optionalAuth, c.AccommodationHandler.GetByID)
		accommodations.GET("/:id/rating", c.AccommodationHandler.GetAverageRating)
		accommodations.GET("/:id/similar", c.AccommodationHandler.RecommendSimilar)
		accommodations.GET("/:id/reviews", optionalAuth, c.ReviewHandler.ListByAccommodation)
		accommodations.GET("/:id/faqs", c.AccommodationHandler.ListFaqs)

		accommodations.POST("", auth, c.AccommodationHandler.Create)
		accommodations.PUT("/:id", auth, c.AccommodationHandler.Update)
		accommodations.DELETE("/:id", auth, c.AccommodationHandler.Delete)
		accommodations.POST("/:id/restore", auth, c.AccommodationHandler.Restore)

		accommodations.POST("/:id/generate-image", auth, c.AccommodationHandler.GenerateImage)
		accommodations.POST("/:id/faqs", auth, c.AccommodationHandler.AddFaq)
		accommodations.PUT("/:id/amenities/:amenityId", auth, c.AccommodationHandler.AttachAmenity)
		accommodations.DELETE("/:id/amenities/:amenityId", auth, c.AccommodationHandler.DetachAmenity)
		accommodations.GET("/:id/ai-content", auth, c.AccommodationHandler.ListAiContents)
		accommodations.PUT("/:id/ai-content", auth, c.AccommodationHandler.UpsertAiContent)
	}

	// ===== HOSTS =====
	api.GET("/hosts/:id/accommodations", optionalAuth, c.AccommodationHandler.GetByOwner)

	// ===== AMENITIES =====
	amenities := api.Group("/amenities")
	{
		amenities.GET("", c.AccommodationHandler.ListAmenityCatalog)
		amenities.POST("", auth, admin, c.AccommodationHandler.CreateAmenity)
		amenities.DELETE("/:id", auth, admin, c.AccommodationHandler.DeleteAmenity)
	}

	// ===== FAQS =====
	faqs := api.Group("/faqs")
	{
		faqs.PUT("/:id", auth, c.AccommodationHandler.UpdateFaq)
		faqs.DELETE("/:id", auth, c.AccommodationHandler.DeleteFaq)
	}

	// ===== REVIEWS =====
	reviews := api.Group("/reviews")
	{
		reviews.POST("", auth, c.ReviewHandler.Create)
		reviews.PUT("/:id", auth, c.ReviewHandler.Update)
		reviews.DELETE("/:id", auth, c.ReviewHandler.Delete)
	}

	// ===== EVENTS =====
	events := api.Group("/events")
	{
		events.GET("", optionalAuth, c.EventHandler.List)
		events.GET("/upcoming", c.EventHandler.ListUpcoming)
		events.GET("/search", c.EventHandler.Search)
		events.GET("/:id", c.EventHandler.GetByID)
		events.POST("", auth, c.EventHandler.Create)
		events.PUT("/:id", auth, c.EventHandler.Update)
		events.DELETE("/:id", auth, c.EventHandler.Delete)
		events.POST("/:id/restore", auth, c.EventHandler.Restore)
	}

	// ===== POSTS =====
	posts := api.Group("/posts")
	{
		posts.GET("", optionalAuth, c.PostHandler.List)
		posts.GET("/search", c.PostHandler.Search)
		posts.GET("/:id", c.PostHandler.GetByID)
		posts.POST("", auth, c.PostHandler.Create)
		posts.PUT("/:id", auth, c.PostHandler.Update)
		posts.DELETE("/:id", auth, c.PostHandler.Delete)
		posts.POST("/:id/restore", auth, c.PostHandler.Restore)
	}

	// ===== TAGS =====
	tags := api.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/popular", c.TagHandler.GetPopular)
		tags.POST("", auth, admin, c.TagHandler.Create)
		tags.DELETE("/:id", auth, admin, c.TagHandler.Delete)
		tags.GET("/:entityType/:entityId", c.TagHandler.ListForEntity)
		tags.PUT("/:entityType/:entityId/:tagId", auth, c.TagHandler.Attach)
		tags.DELETE("/:entityType/:entityId/:tagId", auth, c.TagHandler.Detach)
	}

	// ===== ADMIN =====
	adminGroup := api.Group("/admin", auth, admin)
	{
		adminGroup.GET("/users", c.UserHandler.List)
		adminGroup.GET("/users/:id", c.UserHandler.GetByID)
		adminGroup.PUT("/users/:id/role", c.UserHandler.SetRole)
		adminGroup.PUT("/users/:id/status", c.UserHandler.SetStatus)
		adminGroup.DELETE("/users/:id", c.UserHandler.Delete)
		adminGroup.POST("/users/:id/restore", c.UserHandler.Restore)

		adminGroup.GET("/accommodations", c.AccommodationHandler.GetByState)
		adminGroup.DELETE("/accommodations/:id", c.AccommodationHandler.HardDelete)
	}

	return router
}
