package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"threatguard/internal/config"
	"threatguard/internal/crypto"
	"threatguard/internal/handler"
	"threatguard/internal/middleware"
	"threatguard/internal/repository"
	"threatguard/internal/service"
	"threatguard/internal/threat"
)

type Server struct {
	router     *gin.Engine
	db         *sqlx.DB
	cfg        *config.Config
	logger     *zap.Logger
	analyzer   *threat.Analyzer
	keyManager *crypto.KeyManager
	notifier   service.AlertNotifier
}

func NewServer(
	db *sqlx.DB,
	cfg *config.Config,
	logger *zap.Logger,
	analyzer *threat.Analyzer,
	keyManager *crypto.KeyManager,
	notifier service.AlertNotifier,
) *Server {
	s := &Server{
		router:     gin.Default(),
		db:         db,
		cfg:        cfg,
		logger:     logger,
		analyzer:   analyzer,
		keyManager: keyManager,
		notifier:   notifier,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	authRepo := repository.NewAuthRepository(s.db, s.logger)
	threatRepo := repository.NewThreatRepository(s.db, s.logger)
	evidenceRepo := repository.NewEvidenceRepository(s.db, s.logger)
	notificationRepo := repository.NewNotificationRepository(s.db, s.logger)

	authService := service.NewAuthService(authRepo, s.keyManager, s.logger)
	threatService := service.NewThreatService(s.analyzer, threatRepo, notificationRepo, s.notifier, s.logger)
	evidenceService := service.NewEvidenceService(evidenceRepo, authRepo, s.keyManager, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	threatHandler := handler.NewThreatHandler(threatService, s.logger)
	evidenceHandler := handler.NewEvidenceHandler(evidenceService, s.logger)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(s.logger))
	{
		authRequired.POST("/auth/logout", authHandler.Logout)

		authRequired.POST("/threats/analyze", threatHandler.Analyze)
		authRequired.GET("/threats/detections", threatHandler.ListDetections)
		authRequired.PUT("/threats/detections/:id", threatHandler.UpdateDetection)

		authRequired.POST("/threats/evidence", evidenceHandler.CreateEvidence)
		authRequired.GET("/threats/evidence", evidenceHandler.ListEvidence)

		authRequired.GET("/notifications", notificationHandler.ListNotifications)
		authRequired.PUT("/notifications/:id", notificationHandler.UpdateNotification)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
