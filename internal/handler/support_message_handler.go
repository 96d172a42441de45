package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/contactsupport/backend/internal/model"
	"github.com/contactsupport/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type SupportMessageHandler struct {
	svc service.SupportMessageService
}

func NewSupportMessageHandler(svc service.SupportMessageService) *SupportMessageHandler {
	return &SupportMessageHandler{svc: svc}
}

type SupportMessageResponse struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Message    string  `json:"message"`
	AIResponse *string `json:"ai_response"`
	CreatedAt  string  `json:"created_at"`
}

type CreateSupportMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// UpdateSupportMessageRequest distinguishes omitted fields from empty ones:
// a nil pointer leaves the column untouched.
type UpdateSupportMessageRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Message    *string `json:"message"`
	AIResponse *string `json:"ai_response"`
}

func (h *SupportMessageHandler) Create(c echo.Context) error {
	var req CreateSupportMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.Create(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrInvalid) {
			return c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("validation_error", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create support message"))
	}
	return c.JSON(http.StatusCreated, toSupportMessageResponse(msg))
}

func (h *SupportMessageHandler) List(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	msgs, err := h.svc.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to retrieve support messages"))
	}
	return c.JSON(http.StatusOK, toSupportMessageResponses(msgs))
}

func (h *SupportMessageHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	msg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", notFoundMessage(id)))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to retrieve support message"))
	}
	return c.JSON(http.StatusOK, toSupportMessageResponse(msg))
}

func (h *SupportMessageHandler) GetByEmail(c echo.Context) error {
	email := c.Param("email")
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	msgs, err := h.svc.GetByEmail(c.Request().Context(), email, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to retrieve support messages"))
	}
	return c.JSON(http.StatusOK, toSupportMessageResponses(msgs))
}

func (h *SupportMessageHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req UpdateSupportMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	patch := model.SupportMessagePatch{
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		AIResponse: req.AIResponse,
	}
	msg, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", notFoundMessage(id)))
		case errors.Is(err, service.ErrInvalid):
			return c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("validation_error", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update support message"))
		}
	}
	return c.JSON(http.StatusOK, toSupportMessageResponse(msg))
}

func (h *SupportMessageHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", notFoundMessage(id)))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete support message"))
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func notFoundMessage(id uint64) string {
	return fmt.Sprintf("support message with ID %d not found", id)
}

func toSupportMessageResponse(msg *model.SupportMessage) SupportMessageResponse {
	return SupportMessageResponse{
		ID:         msg.ID,
		Name:       msg.Name,
		Email:      msg.Email,
		Message:    msg.Message,
		AIResponse: msg.AIResponse,
		CreatedAt:  msg.CreatedAt.Format(time.RFC3339),
	}
}

func toSupportMessageResponses(msgs []model.SupportMessage) []SupportMessageResponse {
	out := make([]SupportMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, toSupportMessageResponse(&msgs[i]))
	}
	return out
}
