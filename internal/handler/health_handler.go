package handler

import (
	"net/http"

	"github.com/contactsupport/backend/internal/ai"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	db        *gorm.DB
	responder *ai.GeminiResponder
}

func NewHealthHandler(db *gorm.DB, responder *ai.GeminiResponder) *HealthHandler {
	return &HealthHandler{db: db, responder: responder}
}

func (h *HealthHandler) SetDB(db *gorm.DB) {
	h.db = db
}

func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Contact Support API",
		"version": apiVersion,
		"status":  "running",
	})
}

// Health probes the database; the service is reported degraded, not down,
// when the probe fails.
func (h *HealthHandler) Health(c echo.Context) error {
	status := "healthy"
	database := "connected"

	if err := h.pingDB(c); err != nil {
		status = "degraded"
		database = "disconnected"
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   status,
		"database": database,
	})
}

func (h *HealthHandler) pingDB(c echo.Context) error {
	if h.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request().Context())
}

func (h *HealthHandler) AIHealth(c echo.Context) error {
	configured := h.responder != nil && h.responder.Configured()
	status := "api_key_not_found"
	modelName := ""
	if h.responder != nil {
		modelName = h.responder.Model()
	}
	if configured {
		status = "ready"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"gemini": map[string]interface{}{
			"configured": configured,
			"model":      modelName,
			"status":     status,
		},
	})
}
