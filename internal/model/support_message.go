package model

import "time"

// SupportMessage is one customer support submission. AIResponse stays nil until
// the responder (or an operator) fills it in.
type SupportMessage struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"size:255;not null"`
	Email      string    `gorm:"size:255;not null;index"`
	Message    string    `gorm:"type:text;not null"`
	AIResponse *string   `gorm:"column:ai_response;type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (SupportMessage) TableName() string {
	return "support_message"
}

// SupportMessagePatch carries a partial update. A nil field means "leave the
// column as it is"; a non-nil pointer overwrites it, even with an empty string.
type SupportMessagePatch struct {
	Name       *string
	Email      *string
	Message    *string
	AIResponse *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p SupportMessagePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Message == nil && p.AIResponse == nil
}
