package v1

import (
	"log/slog"
	"net/http"

	"hubspot-webhook-relay/config"
	_ "hubspot-webhook-relay/docs" // registers swagger docs
	"hubspot-webhook-relay/internal/delivery/http/middleware"
	"hubspot-webhook-relay/internal/delivery/http/response"
	"hubspot-webhook-relay/internal/domain"
	"hubspot-webhook-relay/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	WebhookUC domain.WebhookUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(log))

	healthUC := deps.HealthUC
	if healthUC == nil {
		healthUC = usecase.NewHealthUsecase(deps.Config)
	}

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, healthUC.Check(c.Request.Context()))
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	public := r.Group("")
	public.Use(middleware.BodyLimit(deps.Config.MaxBodyBytes))
	NewWebhookHandler(public, deps.WebhookUC)

	return r
}
