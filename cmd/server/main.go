package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storerate/internal/api"
	"storerate/internal/config"
	"storerate/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedDefaultAdmin(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed default admin")
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	go sweepExpiredSessions(repo)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware(cfg.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(httpHandler.SessionMiddleware())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	userGroup := r.Group("/user")
	userGroup.POST("/signup", httpHandler.Signup)
	userGroup.POST("/login", httpHandler.Login)
	userGroup.POST("/logout", httpHandler.Logout)
	userGroup.POST("/update-password", httpHandler.UpdatePassword)
	userGroup.GET("/:id", httpHandler.GetUserName)

	storeGroup := r.Group("/stores")
	storeGroup.GET("", httpHandler.ListStores)
	storeGroup.GET("/search", httpHandler.SearchStores)
	storeGroup.GET("/user/:userId", httpHandler.ListStoresByUser)
	storeGroup.GET("/:id", httpHandler.GetStoreDetails)
	storeGroup.POST("/:id/review", httpHandler.AddReview)
	storeGroup.PUT("/:id/review/:reviewId", httpHandler.EditReview)
	storeGroup.DELETE("/:id/review/:reviewId", httpHandler.DeleteReview)

	adminGroup := r.Group("/admin")
	if cfg.AdminGuard {
		// Off by default: admin routes are served open unless a deployment opts in.
		adminGroup.Use(httpHandler.RequireAdmin())
	}
	adminGroup.GET("/stats", httpHandler.Stats)
	adminGroup.GET("/users", httpHandler.AdminListUsers)
	adminGroup.POST("/users", httpHandler.AdminAddUser)
	adminGroup.PUT("/users/:id", httpHandler.AdminUpdateUser)
	adminGroup.DELETE("/users/:id", httpHandler.AdminDeleteUser)
	adminGroup.GET("/stores", httpHandler.AdminListStores)
	adminGroup.POST("/stores", httpHandler.AdminAddStore)
	adminGroup.PUT("/stores/:id", httpHandler.AdminUpdateStore)
	adminGroup.DELETE("/stores/:id", httpHandler.AdminDeleteStore)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// sweepExpiredSessions drops stale session rows once an hour. The
// middleware already deletes expired sessions lazily on use; the sweep
// covers sessions whose cookie never comes back.
func sweepExpiredSessions(repo model.Repository) {
	for range time.Tick(time.Hour) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		swept, err := repo.DeleteExpiredSessions(ctx, time.Now().UTC())
		cancel()
		if err != nil {
			logrus.WithError(err).Warn("session sweep failed")
			continue
		}
		if swept > 0 {
			logrus.WithField("count", swept).Info("swept expired sessions")
		}
	}
}

// CORSMiddleware handles cross-origin requests from the frontend.
func CORSMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware emits one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
