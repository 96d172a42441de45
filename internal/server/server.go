package server

import (
	"net/http"

	"github.com/contactsupport/backend/internal/ai"
	"github.com/contactsupport/backend/internal/config"
	"github.com/contactsupport/backend/internal/handler"
	"github.com/contactsupport/backend/internal/repository"
	"github.com/contactsupport/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e             *echo.Echo
	msgRepo       repository.SupportMessageRepository
	healthHandler *handler.HealthHandler
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	responder := ai.NewGeminiResponder(cfg.GeminiAPIKey, cfg.GeminiModel)

	msgRepo := repository.NewSupportMessageRepository(db)
	msgSvc := service.NewSupportMessageService(msgRepo, responder)
	msgHandler := handler.NewSupportMessageHandler(msgSvc)

	healthHandler := handler.NewHealthHandler(db, responder)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Health)
	e.GET("/health/ai", healthHandler.AIHealth)

	api := e.Group("/api/support-messages")
	api.POST("", msgHandler.Create)
	api.GET("", msgHandler.List)
	api.GET("/:id", msgHandler.Get)
	api.GET("/email/:email", msgHandler.GetByEmail)
	api.PUT("/:id", msgHandler.Update)
	api.DELETE("/:id", msgHandler.Delete)

	return &Server{e: e, msgRepo: msgRepo, healthHandler: healthHandler}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the connection once it is ready; requests arriving before
// that fail with a server error rather than blocking startup.
func (s *Server) SetDB(db *gorm.DB) {
	if s.msgRepo != nil {
		s.msgRepo.SetDB(db)
	}
	if s.healthHandler != nil {
		s.healthHandler.SetDB(db)
	}
}
