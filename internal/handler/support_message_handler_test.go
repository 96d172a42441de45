package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contactsupport/backend/internal/model"
	"github.com/contactsupport/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type stubService struct {
	createFn     func(ctx context.Context, name, email, message string) (*model.SupportMessage, error)
	getFn        func(ctx context.Context, id uint64) (*model.SupportMessage, error)
	listFn       func(ctx context.Context, skip, limit int) ([]model.SupportMessage, error)
	getByEmailFn func(ctx context.Context, email string, skip, limit int) ([]model.SupportMessage, error)
	updateFn     func(ctx context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error)
	deleteFn     func(ctx context.Context, id uint64) error
}

func (s *stubService) Create(ctx context.Context, name, email, message string) (*model.SupportMessage, error) {
	return s.createFn(ctx, name, email, message)
}
func (s *stubService) Get(ctx context.Context, id uint64) (*model.SupportMessage, error) {
	return s.getFn(ctx, id)
}
func (s *stubService) List(ctx context.Context, skip, limit int) ([]model.SupportMessage, error) {
	return s.listFn(ctx, skip, limit)
}
func (s *stubService) GetByEmail(ctx context.Context, email string, skip, limit int) ([]model.SupportMessage, error) {
	return s.getByEmailFn(ctx, email, skip, limit)
}
func (s *stubService) Update(ctx context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error) {
	return s.updateFn(ctx, id, patch)
}
func (s *stubService) Delete(ctx context.Context, id uint64) error {
	return s.deleteFn(ctx, id)
}

func sample(id uint64) *model.SupportMessage {
	return &model.SupportMessage{
		ID:        id,
		Name:      "John Doe",
		Email:     "john@example.com",
		Message:   "help",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func doRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, pathParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range pathParams {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			createFn: func(_ context.Context, name, email, message string) (*model.SupportMessage, error) {
				msg := sample(1)
				msg.Name, msg.Email, msg.Message = name, email, message
				return msg, nil
			},
		})
		rec := doRequest(t, h.Create, http.MethodPost, "/api/support-messages",
			`{"name":"John Doe","email":"john@example.com","message":"help"}`, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status=%d want 201", rec.Code)
		}
		var resp SupportMessageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != 1 || resp.AIResponse != nil {
			t.Fatalf("resp=%+v", resp)
		}
		if !strings.Contains(rec.Body.String(), `"ai_response":null`) {
			t.Fatalf("body should carry explicit null ai_response: %s", rec.Body.String())
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			createFn: func(context.Context, string, string, string) (*model.SupportMessage, error) {
				return nil, service.ErrInvalid
			},
		})
		rec := doRequest(t, h.Create, http.MethodPost, "/api/support-messages",
			`{"email":"john@example.com"}`, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status=%d want 422", rec.Code)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{})
		rec := doRequest(t, h.Create, http.MethodPost, "/api/support-messages", `{"name":`, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d want 400", rec.Code)
		}
	})
}

func TestGetHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			getFn: func(_ context.Context, id uint64) (*model.SupportMessage, error) {
				return sample(id), nil
			},
		})
		rec := doRequest(t, h.Get, http.MethodGet, "/api/support-messages/7", "", map[string]string{"id": "7"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d want 200", rec.Code)
		}
		var resp SupportMessageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != 7 || resp.CreatedAt != "2024-05-01T12:00:00Z" {
			t.Fatalf("resp=%+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			getFn: func(context.Context, uint64) (*model.SupportMessage, error) {
				return nil, service.ErrNotFound
			},
		})
		rec := doRequest(t, h.Get, http.MethodGet, "/api/support-messages/99", "", map[string]string{"id": "99"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status=%d want 404", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "99") {
			t.Fatalf("404 body should name the id: %s", rec.Body.String())
		}
	})

	t.Run("bad id", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{})
		rec := doRequest(t, h.Get, http.MethodGet, "/api/support-messages/abc", "", map[string]string{"id": "abc"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d want 400", rec.Code)
		}
	})
}

func TestListHandler(t *testing.T) {
	var gotSkip, gotLimit int
	h := NewSupportMessageHandler(&stubService{
		listFn: func(_ context.Context, skip, limit int) ([]model.SupportMessage, error) {
			gotSkip, gotLimit = skip, limit
			return []model.SupportMessage{*sample(1), *sample(2)}, nil
		},
	})
	rec := doRequest(t, h.List, http.MethodGet, "/api/support-messages?skip=5&limit=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rec.Code)
	}
	if gotSkip != 5 || gotLimit != 2 {
		t.Fatalf("skip/limit = %d/%d", gotSkip, gotLimit)
	}
	var resp []SupportMessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("len=%d want 2", len(resp))
	}
}

func TestGetByEmailHandler(t *testing.T) {
	h := NewSupportMessageHandler(&stubService{
		getByEmailFn: func(_ context.Context, email string, _, _ int) ([]model.SupportMessage, error) {
			if email != "nobody@example.com" {
				t.Fatalf("email=%q", email)
			}
			return nil, nil
		},
	})
	rec := doRequest(t, h.GetByEmail, http.MethodGet, "/api/support-messages/email/nobody@example.com", "",
		map[string]string{"email": "nobody@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty result should encode as [], got %s", rec.Body.String())
	}
}

func TestUpdateHandler(t *testing.T) {
	t.Run("partial patch decodes presence", func(t *testing.T) {
		var gotPatch model.SupportMessagePatch
		h := NewSupportMessageHandler(&stubService{
			updateFn: func(_ context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error) {
				gotPatch = patch
				msg := sample(id)
				msg.Message = *patch.Message
				return msg, nil
			},
		})
		rec := doRequest(t, h.Update, http.MethodPut, "/api/support-messages/3",
			`{"message":""}`, map[string]string{"id": "3"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d want 200", rec.Code)
		}
		if gotPatch.Message == nil || *gotPatch.Message != "" {
			t.Fatalf("empty string should arrive as present: %+v", gotPatch)
		}
		if gotPatch.Name != nil || gotPatch.Email != nil || gotPatch.AIResponse != nil {
			t.Fatalf("omitted fields should stay nil: %+v", gotPatch)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			updateFn: func(context.Context, uint64, model.SupportMessagePatch) (*model.SupportMessage, error) {
				return nil, service.ErrNotFound
			},
		})
		rec := doRequest(t, h.Update, http.MethodPut, "/api/support-messages/99",
			`{"name":"X"}`, map[string]string{"id": "99"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status=%d want 404", rec.Code)
		}
	})
}

func TestDeleteHandler(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			deleteFn: func(context.Context, uint64) error { return nil },
		})
		rec := doRequest(t, h.Delete, http.MethodDelete, "/api/support-messages/3", "", map[string]string{"id": "3"})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status=%d want 204", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("204 body should be empty, got %q", rec.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewSupportMessageHandler(&stubService{
			deleteFn: func(context.Context, uint64) error { return service.ErrNotFound },
		})
		rec := doRequest(t, h.Delete, http.MethodDelete, "/api/support-messages/3", "", map[string]string{"id": "3"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status=%d want 404", rec.Code)
		}
	})
}
