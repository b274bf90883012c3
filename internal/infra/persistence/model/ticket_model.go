package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupportTicketModel mirrors the 'support_tickets' table.
type SupportTicketModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(32);not null;default:general"`
	Priority    string    `gorm:"type:varchar(16);not null;default:medium"`
	Status      string    `gorm:"type:varchar(16);not null;default:open;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SupportTicketModel) TableName() string {
	return "support_tickets"
}

// BeforeCreate assigns the UUID app-side.
func (m *SupportTicketModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
