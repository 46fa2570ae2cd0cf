package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appNotification "habitat/internal/application/notification"
	"habitat/internal/application/notification/dispatch"
	"habitat/internal/infrastructure/auth"
	"habitat/internal/infrastructure/config"
	"habitat/internal/infrastructure/ratelimit"
	"habitat/internal/infrastructure/repository"
	"habitat/internal/infrastructure/senders"
	"habitat/internal/interfaces/http/handlers"
	"habitat/internal/interfaces/http/middleware"
	"habitat/internal/interfaces/http/routes"
	"habitat/internal/shared/db"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/services/markdown"
)

// Router wires the notification stack behind a gin engine. The dispatcher is
// exposed so the server command can start it, stop it, and hand it to the
// retry scheduler.
type Router struct {
	engine     *gin.Engine
	dispatcher *dispatch.Dispatcher
}

// NewRouter builds every dependency from the database handle and config:
// repositories, senders, the dispatch pipeline, the application service, and
// the HTTP layer around it.
func NewRouter(database *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.Recovery())

	residentRepo := repository.NewResidentRepository(database)
	deliveryRepo := repository.NewDeliveryRepository(database)
	preferenceRepo := repository.NewPreferenceRepository(database)
	templateRepo := repository.NewTemplateRepository(database)
	txManager := db.NewTransactionManager(database)

	markdownSvc := markdown.NewService()
	registry := dispatch.NewSenderRegistry(
		senders.NewEmailSender(cfg.Email, residentRepo, markdownSvc, log),
		senders.NewSMSSender(cfg.SMS, residentRepo, log),
		senders.NewChatSender(cfg.Chat, residentRepo, log),
		senders.NewPushSender(cfg.Push, residentRepo, log),
	)

	dispatcher := dispatch.NewDispatcher(deliveryRepo, registry, dispatch.Config{
		Workers:    cfg.Notify.Workers,
		QueueSize:  cfg.Notify.QueueSize,
		MaxRetries: cfg.Notify.MaxRetries,
		SweepBatch: cfg.Notify.SweepBatchSize,
	}, log)

	gate := dispatch.NewPreferenceGate(preferenceRepo, log)
	resolver := dispatch.NewTemplateResolver(templateRepo, log)

	service := appNotification.NewService(
		residentRepo, deliveryRepo, preferenceRepo, templateRepo,
		gate, resolver, dispatcher, txManager, log,
	)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, log)

	var limiter ratelimit.RateLimiter = ratelimit.NoopRateLimiter{}
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisRateLimiter(client)
	}

	notificationHandler := handlers.NewNotificationHandler(service, log)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupNotificationRoutes(engine, &routes.NotificationRouteConfig{
		NotificationHandler: notificationHandler,
		AuthMiddleware:      authMiddleware,
		SendRateLimit:       middleware.SendRateLimit(limiter, cfg.Notify.SendRequestsPerMin, log),
	})

	return &Router{
		engine:     engine,
		dispatcher: dispatcher,
	}
}

// Dispatcher returns the shared dispatch pipeline for lifecycle management.
func (r *Router) Dispatcher() *dispatch.Dispatcher {
	return r.dispatcher
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
