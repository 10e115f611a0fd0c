package v1

import (
	"net/http"
	"time"

	"tescilofisi-backend/config"
	"tescilofisi-backend/internal/delivery/http/middleware"
	"tescilofisi-backend/internal/delivery/http/response"
	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/internal/viewtracker"
	"tescilofisi-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	PostUC       domain.PostUsecase
	ContactUC    domain.ContactUsecase
	StatsUC      domain.StatsUsecase
	Tracker      *viewtracker.Tracker
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	NewSitemapHandler(r, deps.PostUC, deps.Config.SiteBaseURL)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Sistem çalışıyor", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// The abuse-prone public endpoints carry per-IP rate limits.
	contactLimiter := middleware.RateLimitMiddleware(
		middleware.ContactRateLimitConfig(deps.Config.RateLimitContactPerIP, window))
	trackViewLimiter := middleware.RateLimitMiddleware(
		middleware.TrackViewRateLimitConfig(deps.Config.RateLimitTrackViewPerIP, window))
	loginLimiter := middleware.RateLimitMiddleware(
		middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewAuthHandler(v1, protected, deps.Config, loginLimiter)
		NewPostHandler(v1, protected, deps.PostUC, deps.Tracker, trackViewLimiter)
		NewContactHandler(v1, protected, deps.ContactUC, contactLimiter)
		NewAdminHandler(protected, deps.StatsUC, deps.Config)
	}

	return r
}
