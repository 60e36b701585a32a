package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/config"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/api"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/database"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/middleware"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	sqlDB  *database.DB
}

// New creates a new server instance
func New(cfg *config.Config, db *gorm.DB, sqlDB *database.DB, redisClient *redis.Client, images service.ImageStore) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	s := &Server{
		router: router,
		db:     db,
		sqlDB:  sqlDB,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}

	router.GET("/health", s.healthCheck)
	api.SetupAPI(router, db, redisClient, cfg.JWTSecret, images)

	return s
}

// Start begins serving requests and blocks until the listener stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) healthCheck(c *gin.Context) {
	if s.sqlDB != nil {
		if err := s.sqlDB.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
