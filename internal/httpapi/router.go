package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/config"
	"github.com/nexvstar/site/internal/httpapi/handlers"
	"github.com/nexvstar/site/internal/httpapi/middleware"
	"go.uber.org/zap"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	// The consent cookie is set cross-origin by the site frontend.
	cfg.AllowCredentials = true
	return cfg
}

// NewRouter wires the site API. limiter may be nil, which disables rate
// limiting on the intake forms.
func NewRouter(cfg config.Config, h *handlers.Handler, limiter middleware.Limiter, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.GET("/ping", h.Ping)
	r.POST("/login", h.Login)

	api := r.Group("/api")
	{
		api.GET("/site/home", h.Home)
		api.GET("/site/pricing", h.Pricing)
		api.GET("/site/services", h.Services)
		api.GET("/site/how-it-works", h.HowItWorks)
		api.GET("/site/case-studies", h.CaseStudies)

		api.GET("/blog", h.ListBlogPosts)
		api.GET("/blog/categories", h.BlogCategories)
		api.GET("/blog/:id", h.GetBlogPost)
		api.GET("/testimonials", h.Testimonials)

		intake := middleware.RateLimit(limiter, "intake", cfg.LeadRateLimit, cfg.LeadRateWindow, log)
		api.POST("/leads", intake, h.SubmitLead)
		api.POST("/demo-requests", intake, h.SubmitDemoRequest)
		api.POST("/newsletter/subscribe", intake, h.Subscribe)
		api.POST("/newsletter/unsubscribe", h.Unsubscribe)

		api.GET("/consent", h.GetConsent)
		api.POST("/consent", h.SetConsent)

		api.GET("/chat/quick-replies", h.QuickReplies)
		chat := middleware.RateLimit(limiter, "chat", cfg.ChatRateLimit, cfg.ChatRateWindow, log)
		api.POST("/chat/conversations", chat, h.CreateConversation)
		api.GET("/chat/conversations/:id/messages", h.ListChatMessages)
		api.POST("/chat/conversations/:id/messages", h.SendChatMessage)
		api.POST("/chat/conversations/:id/messages/stream", h.SendChatMessageStream)
		api.GET("/chat/ws", chat, h.ChatWebsocket)
	}

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/me", h.Me)
	authGroup.PUT("/me/profile", h.SaveMyProfile)
	authGroup.GET("/me/role", h.MyRole)
	authGroup.GET("/me/admin", h.AmIAdmin)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.AdminRequired())
	admin.GET("/leads", h.ListLeads)
	admin.GET("/demo-requests", h.ListDemoRequests)
	admin.PATCH("/demo-requests/:id/status", h.UpdateDemoRequestStatus)
	admin.GET("/subscribers", h.ListSubscribers)
	admin.POST("/blog", h.CreateBlogPost)
	admin.PUT("/blog/:id", h.UpdateBlogPost)
	admin.DELETE("/blog/:id", h.DeleteBlogPost)
	admin.POST("/testimonials", h.AddTestimonial)
	admin.GET("/users/:id/profile", h.GetUserProfile)
	admin.PUT("/users/:id/role", h.AssignRole)

	return r
}
