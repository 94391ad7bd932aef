package main

import (
	"context"
	"embed"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/petersfiske/booking/config"
	redisconn "github.com/petersfiske/booking/config/redis"
	"github.com/petersfiske/booking/controllers/decision_controller"
	"github.com/petersfiske/booking/logger"
	"github.com/petersfiske/booking/middlewares/cors"
	"github.com/petersfiske/booking/routes"
	"github.com/petersfiske/booking/utils/mail"
)

//go:embed templates/email/*.html templates/page/*.html
var embeddedTemplates embed.FS

// newRouter assembles the engine: recovery, CORS, explicit 405 handling,
// the booking routes and the health check.
func newRouter(cfg *config.Config, client *goredis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())
	r.HandleMethodNotAllowed = true

	routes.RegisterBookingRoutes(r, cfg, client)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from booking service"})
	})

	return r
}

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.ErrorLogger.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	client, err := redisconn.Connect(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		logger.ErrorLogger.Fatalf("Record store error: %v", err)
	}
	defer redisconn.Close(client)

	if err := mail.InitTemplates(embeddedTemplates); err != nil {
		logger.ErrorLogger.Fatalf("Template error: %v", err)
	}
	if err := decision_controller.InitTemplates(embeddedTemplates); err != nil {
		logger.ErrorLogger.Fatalf("Template error: %v", err)
	}
	logger.InfoLogger.Info("Email and page templates initialized")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := newRouter(cfg, client)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.InfoLogger.Infof("Booking service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorLogger.Errorf("Server failed to listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down booking service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.InfoLogger.Info("Booking service exited gracefully")
}
