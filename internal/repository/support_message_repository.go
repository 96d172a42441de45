package repository

import (
	"context"
	"errors"

	"github.com/contactsupport/backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type SupportMessageRepository interface {
	Create(ctx context.Context, msg *model.SupportMessage) error
	FindByID(ctx context.Context, id uint64) (*model.SupportMessage, error)
	List(ctx context.Context, offset, limit int) ([]model.SupportMessage, error)
	FindByEmail(ctx context.Context, email string, offset, limit int) ([]model.SupportMessage, error)
	Update(ctx context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error)
	Delete(ctx context.Context, id uint64) error
	SetDB(db *gorm.DB)
}

type supportMessageRepository struct {
	db *gorm.DB
}

func NewSupportMessageRepository(db *gorm.DB) SupportMessageRepository {
	return &supportMessageRepository{db: db}
}

func (r *supportMessageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *supportMessageRepository) Create(ctx context.Context, msg *model.SupportMessage) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *supportMessageRepository) FindByID(ctx context.Context, id uint64) (*model.SupportMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msg model.SupportMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *supportMessageRepository) List(ctx context.Context, offset, limit int) ([]model.SupportMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.SupportMessage
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *supportMessageRepository) FindByEmail(ctx context.Context, email string, offset, limit int) ([]model.SupportMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.SupportMessage
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Update applies only the fields carried by the patch. CreatedAt and ID are
// never touched.
func (r *supportMessageRepository) Update(ctx context.Context, id uint64, patch model.SupportMessagePatch) (*model.SupportMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msg model.SupportMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if patch.Name != nil {
		changes["name"] = *patch.Name
	}
	if patch.Email != nil {
		changes["email"] = *patch.Email
	}
	if patch.Message != nil {
		changes["message"] = *patch.Message
	}
	if patch.AIResponse != nil {
		changes["ai_response"] = *patch.AIResponse
	}
	if len(changes) == 0 {
		return &msg, nil
	}

	if err := r.db.WithContext(ctx).Model(&msg).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *supportMessageRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Delete(&model.SupportMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
