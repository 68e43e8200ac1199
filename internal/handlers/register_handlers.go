package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/vidtube_backend/cmd/docs"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
)

const (
	maxJSONBodyBytes   = 16 << 10
	maxMultipartMemory = 8 << 20
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// limiterStore backs the login rate limit; nil means an in-process memory store.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterStore limiter.Store,
) {
	registerValidators()

	r.MaxMultipartMemory = maxMultipartMemory
	r.Use(corsMiddleware(cfg), middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services, loginLimiter(cfg, limiterStore))

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimit *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")
	registerUserRoutes(v1, cfg, services, loginLimit)
}

func registerUserRoutes(v1 *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, loginLimit *limiter.Limiter) {
	authHandler := NewAuthHandler(services.User, services.Auth, cfg)
	userHandler := NewUserHandler(services.User, cfg)

	// ErrorResponder must wrap the auth middleware too, so it is attached first.
	users := v1.Group("/users", middleware.ErrorResponder(), middleware.LimitJSONBody(maxJSONBodyBytes))
	{
		users.POST("/register", handle(authHandler.Register))
		users.POST("/login", middleware.RateLimit(loginLimit), handle(authHandler.Login))
		users.POST("/refresh-token", handle(authHandler.RefreshAccessToken))
		users.GET("/channel/:username", middleware.OptionalAuthMiddleware(services.Auth), handle(userHandler.ChannelProfile))
	}

	secured := users.Group("", middleware.AuthMiddleware(services.Auth))
	{
		secured.POST("/logout", handle(authed(authHandler.Logout)))
		secured.POST("/change-password", handle(authed(userHandler.ChangePassword)))
		secured.GET("/current-user", handle(authed(userHandler.CurrentUser)))
		secured.PATCH("/update-account", handle(authed(userHandler.UpdateAccount)))
		secured.PATCH("/avatar", handle(authed(userHandler.UpdateAvatar)))
		secured.PATCH("/cover-image", handle(authed(userHandler.UpdateCoverImage)))
		secured.GET("/watch-history", handle(authed(userHandler.WatchHistory)))
	}
}

func loginLimiter(cfg *config.Config, store limiter.Store) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		slog.Warn("Invalid LOGIN_RATE_LIMIT, using 5-M", slog.String("value", cfg.LoginRateLimit), slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	if store == nil {
		store = memory.NewStore()
	}
	return limiter.New(store, rate)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origin := strings.TrimSpace(cfg.CORSOrigin)
	if origin == "" || origin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		for _, o := range strings.Split(origin, ",") {
			corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, strings.TrimSpace(o))
		}
	}
	return cors.New(corsCfg)
}

// registerValidators adds the custom binding rules used by the request DTOs.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Registering twice replaces the rule, so repeated calls are harmless.
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
