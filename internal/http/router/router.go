package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/config"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/http/middleware"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/handler"
)

// Handlers - всё, что монтирует роутер.
type Handlers struct {
	Post         *handler.PostHandler
	Request      *handler.RequestHandler
	Dispute      *handler.DisputeHandler
	Rating       *handler.RatingHandler
	Notification *handler.NotificationHandler
	Webhook      *handler.WebhookHandler
	Health       *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	// Вебхук хранилища: общий секрет вместо JWT.
	api.POST("/webhooks/requests",
		middleware.WebhookSecret(cfg.WebhookSecret),
		middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod),
		h.Webhook.RequestChanged,
	)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.POST("/posts", h.Post.CreatePost)
		protected.GET("/posts", h.Post.ListOpenPosts)
		protected.GET("/posts/:id", middleware.UUIDValidator("id"), h.Post.GetPost)

		protected.GET("/requests", h.Request.ListMyRequests)
		protected.GET("/requests/:id", middleware.UUIDValidator("id"), h.Request.GetRequest)
		protected.GET("/requests/:id/audit", middleware.UUIDValidator("id"), h.Request.ListAudit)
		protected.GET("/requests/:id/dispute", middleware.UUIDValidator("id"), h.Dispute.GetRequestDispute)
		protected.GET("/requests/:id/ratings", middleware.UUIDValidator("id"), h.Rating.ListRequestRatings)

		protected.GET("/disputes/:id", middleware.UUIDValidator("id"), h.Dispute.GetDispute)
		protected.GET("/users/:id/stats", middleware.UUIDValidator("id"), h.Rating.GetProfileStats)

		protected.GET("/notifications", h.Notification.ListNotifications)
		protected.PUT("/notifications/read-all", h.Notification.MarkAllAsRead)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notification.MarkAsRead)
	}

	// Мутации заявок ограничиваем по пользователю.
	mutations := api.Group("/")
	mutations.Use(middleware.AuthMiddleware(tokens))
	mutations.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		mutations.POST("/posts/:id/requests", middleware.UUIDValidator("id"), h.Request.CreateRequest)

		mutations.POST("/requests/:id/accept", middleware.UUIDValidator("id"), h.Request.Accept)
		mutations.POST("/requests/:id/decline", middleware.UUIDValidator("id"), h.Request.Decline)
		mutations.POST("/requests/:id/ordered", middleware.UUIDValidator("id"), h.Request.MarkOrdered)
		mutations.POST("/requests/:id/picked-up", middleware.UUIDValidator("id"), h.Request.MarkPickedUp)
		mutations.POST("/requests/:id/complete", middleware.UUIDValidator("id"), h.Request.MarkCompleted)
		mutations.POST("/requests/:id/cancel", middleware.UUIDValidator("id"), h.Request.Cancel)
		mutations.POST("/requests/:id/dispute", middleware.UUIDValidator("id"), h.Dispute.OpenDispute)
		mutations.POST("/requests/:id/ratings", middleware.UUIDValidator("id"), h.Rating.SubmitRating)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.RequireRole(valueobject.RoleAdmin))
	{
		admin.POST("/disputes/:id/resolve", middleware.UUIDValidator("id"), h.Dispute.ResolveDispute)
	}

	return r
}
