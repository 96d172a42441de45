package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/contactsupport/backend/internal/ai"
	"github.com/contactsupport/backend/internal/model"
	"github.com/contactsupport/backend/internal/reqctx"
	"github.com/contactsupport/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks client-attributable input problems. Wrapped errors keep
	// the field-level detail.
	ErrInvalid = errors.New("invalid input")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const maxMessageLength = 10000

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type SupportMessageService interface {
	Create(ctx context.Context, name, email, message string) (*model.SupportMessage, error)
	Get(ctx context.Context, id uint64) (*model.SupportMessage, error)
	List(ctx context.Context, skip, limit int) ([]model.SupportMessage, error)
	GetByEmail(ctx context.Context, email string, skip, limit int) ([]model.SupportMessage, error)
	Update(ctx context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error)
	Delete(ctx context.Context, id uint64) error
}

type supportMessageService struct {
	repo      repository.SupportMessageRepository
	responder ai.Responder
}

// NewSupportMessageService wires the repository and an optional responder.
// With responder nil, created messages simply stay unanswered.
func NewSupportMessageService(repo repository.SupportMessageRepository, responder ai.Responder) SupportMessageService {
	return &supportMessageService{repo: repo, responder: responder}
}

func validateFields(name, email, message string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required and cannot be empty", ErrInvalid)
	}
	if len(name) > 255 {
		return fmt.Errorf("%w: name is too long, maximum length is 255 characters", ErrInvalid)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required and cannot be empty", ErrInvalid)
	}
	if len(email) > 255 {
		return fmt.Errorf("%w: email is too long, maximum length is 255 characters", ErrInvalid)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalid)
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: message is required and cannot be empty", ErrInvalid)
	}
	if len(message) > maxMessageLength {
		return fmt.Errorf("%w: message is too long, maximum length is %d characters", ErrInvalid, maxMessageLength)
	}
	return nil
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

func (s *supportMessageService) Create(ctx context.Context, name, email, message string) (*model.SupportMessage, error) {
	if err := validateFields(name, email, message); err != nil {
		return nil, err
	}

	msg := &model.SupportMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.responder != nil {
		go s.generateResponse(msg.ID, name, email, message)
	}

	return msg, nil
}

// generateResponse is best-effort: the message is already saved, and a failed
// generation only leaves ai_response unset.
func (s *supportMessageService) generateResponse(id uint64, name, email, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = reqctx.WithRID(ctx, uuid.NewString())
	ctx = reqctx.WithMessageID(ctx, id)

	answer := s.responder.Respond(ctx, name, email, message)
	if answer == "" {
		return
	}
	patch := model.SupportMessagePatch{AIResponse: &answer}
	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		log.Printf("[ai] rid=%s msg=%d stage=save_fail err=%v", reqctx.RID(ctx), id, err)
	}
}

func (s *supportMessageService) Get(ctx context.Context, id uint64) (*model.SupportMessage, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (s *supportMessageService) List(ctx context.Context, skip, limit int) ([]model.SupportMessage, error) {
	skip, limit = clampPage(skip, limit)
	return s.repo.List(ctx, skip, limit)
}

func (s *supportMessageService) GetByEmail(ctx context.Context, email string, skip, limit int) ([]model.SupportMessage, error) {
	skip, limit = clampPage(skip, limit)
	return s.repo.FindByEmail(ctx, email, skip, limit)
}

func (s *supportMessageService) Update(ctx context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error) {
	if patch.Name != nil || patch.Email != nil || patch.Message != nil {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		name, email, message := current.Name, current.Email, current.Message
		if patch.Name != nil {
			name = *patch.Name
		}
		if patch.Email != nil {
			email = *patch.Email
		}
		if patch.Message != nil {
			message = *patch.Message
		}
		if err := validateFields(name, email, message); err != nil {
			return nil, err
		}
	}

	msg, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (s *supportMessageService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
