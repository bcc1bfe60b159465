package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/config"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/handlers"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/jobs"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/services"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("Invalid LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	// Open the local snapshot slot
	store, err := services.NewSnapshotStore(cfg.CacheDBPath, cfg.GetCacheTTL())
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()

	refreshConfig := config.DefaultRefreshConfig()
	refreshConfig.Interval = cfg.GetRefreshInterval()
	refreshConfig.CacheTTL = cfg.GetCacheTTL()

	// Wire the refresh pipeline
	httpFactory := shared.NewHTTPClientFactory(refreshConfig.HTTPTimeout)
	defer httpFactory.CleanupAllClients()

	upstreamClient := services.NewLobbyAPIClient(cfg.UpstreamBaseURL, httpFactory, refreshConfig.HTTPTimeout)
	renderer := services.NewRenderer(cfg.GetDefaultMaxPlayers(), cfg.AdminContact)
	view := services.NewLobbyView()
	session := services.NewSession()
	metrics := shared.NewRefreshMetrics()
	coordinator := services.NewRefreshCoordinator(store, upstreamClient, renderer, view, session, metrics)

	proxyCacheConfig := config.DefaultProxyCacheConfig()
	proxyCache := services.NewProxyCache(proxyCacheConfig.DefaultTTL, proxyCacheConfig.MaxSize)
	defer proxyCache.Stop()

	logrus.Info("Lobby gateway services initialized:")
	logrus.Infof("  - Upstream API at %s", cfg.UpstreamBaseURL)
	logrus.Infof("  - Snapshot slot %s (TTL: %v)", cfg.CacheDBPath, refreshConfig.CacheTTL)
	logrus.Infof("  - Room refresh interval %v", refreshConfig.Interval)
	logrus.Infof("  - Pass-through cache (TTL: %v, max size: %d)", proxyCacheConfig.DefaultTTL, proxyCacheConfig.MaxSize)

	// First-activation load: cache-first, then an unconditional background
	// refresh; a total failure still renders the empty-state placeholders.
	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := coordinator.LoadInitial(initCtx); err != nil {
		logrus.WithError(err).Warn("Initial lobby load failed, serving placeholders until the next tick")
	}
	cancel()

	// Start the periodic room refresh
	refreshJob := jobs.NewLobbyRefreshJob(coordinator, refreshConfig.Interval)
	refreshJob.Start()
	defer refreshJob.Stop()

	// Initialize handlers
	lobbyHandler := handlers.NewLobbyHandler(view, session, metrics)
	joinHandler := handlers.NewJoinHandler(upstreamClient, metrics)
	profileHandler := handlers.NewProfileHandler(upstreamClient, proxyCache)

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Routes
	api := app.Group("/api")

	// Lobby view routes
	api.Get("/lobby/rooms", lobbyHandler.GetRooms)
	api.Get("/lobby/banners", lobbyHandler.GetBanners)
	api.Get("/metrics", lobbyHandler.GetMetrics)

	// Pass-through routes
	api.Post("/rooms/:id/join", joinHandler.PostJoin)
	api.Get("/users/:id", profileHandler.GetUser)
	api.Get("/coupons/:user_id", profileHandler.GetCoupons)
	api.Get("/events", profileHandler.GetEvents)

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
