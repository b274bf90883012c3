package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRequestModel mirrors the 'booking_requests' table.
type BookingRequestModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Category       string     `gorm:"type:varchar(32);not null;index"`
	ServiceName    string     `gorm:"type:varchar(128)"`
	Description    string     `gorm:"type:text"`
	CustomerName   string     `gorm:"type:varchar(100);not null"`
	CustomerPhone  string     `gorm:"type:varchar(32);not null"`
	CustomerEmail  string     `gorm:"type:varchar(255)"`
	ServiceAddress string     `gorm:"type:text;not null"`
	PreferredDate  *time.Time ``
	TimeSlot       string     `gorm:"type:varchar(16);not null;default:morning"`
	Urgency        string     `gorm:"type:varchar(16);not null;default:normal"`
	EstimatedPrice float64    `gorm:"not null;default:0"`
	Status         string     `gorm:"type:varchar(16);not null;default:pending;index"`
	Version        int        `gorm:"not null;default:0"`
	CreatedAt      time.Time

	Assignment *BookingAssignmentModel `gorm:"foreignKey:BookingID"`
}

// TableName explicitly sets the table name for GORM.
func (BookingRequestModel) TableName() string {
	return "booking_requests"
}

// BeforeCreate assigns the UUID app-side.
func (m *BookingRequestModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// BookingAssignmentModel mirrors the 'booking_assignments' table.
// The unique index on BookingID is the storage-level backstop for the
// one-active-assignment-per-booking invariant.
type BookingAssignmentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ProviderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedBy       uuid.UUID `gorm:"type:uuid;not null"`
	Type             string    `gorm:"type:varchar(16);not null;default:manual"`
	ProviderAccepted bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingAssignmentModel) TableName() string {
	return "booking_assignments"
}

// BeforeCreate assigns the UUID app-side.
func (m *BookingAssignmentModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
