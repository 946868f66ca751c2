package appServer

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shrvnsthr/Event-Booking/config"
	repository "github.com/Shrvnsthr/Event-Booking/internal/database/postgres"
	cache "github.com/Shrvnsthr/Event-Booking/internal/database/redis"
	"github.com/Shrvnsthr/Event-Booking/internal/service"
	"github.com/Shrvnsthr/Event-Booking/internal/transport"
	"github.com/Shrvnsthr/Event-Booking/internal/worker"

	"github.com/Shrvnsthr/Event-Booking/pkg/auth"
	"github.com/Shrvnsthr/Event-Booking/pkg/kafka"
	"github.com/Shrvnsthr/Event-Booking/pkg/postgres"
	"github.com/Shrvnsthr/Event-Booking/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer wires every layer together and runs the HTTP server until
// SIGINT/SIGTERM.
func NewServer(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Event cache; the service degrades to direct reads without it
	var eventCache *cache.EventCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis: %v. Continuing without cache...", err)
		} else {
			defer redisClient.Close()
			eventCache = cache.NewEventCache(redisClient, cfg.App.CacheTTL)
			logrus.Info("Event cache initialized")
		}
	}

	// Booking event stream
	var producer kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Services
	eventService := service.NewEventService(eventRepo, eventCache)
	bookingService := service.NewBookingService(bookingRepo, eventCache, producer, cfg.App.MaxTickets)
	userService := service.NewUserService(userRepo, tokens)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache refresher
	if eventCache != nil {
		cacheWorker := worker.NewEventCacheWorker(eventService, cfg.Worker.CacheRefreshInterval)
		go cacheWorker.Start(ctx)
	}

	// Handlers
	eventHandler := transport.NewEventHandler(eventService)
	bookingHandler := transport.NewBookingHandler(bookingService)
	userHandler := transport.NewUserHandler(userService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(eventHandler, bookingHandler, userHandler, tokens)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
