// Package model contains the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Name      string    `gorm:"type:varchar(100)"`
	Role      string    `gorm:"type:varchar(16);not null;index"`
	Status    string    `gorm:"type:varchar(16);not null;default:pending;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProviderProfile *ProviderProfileModel `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the UUID app-side so sqlite test databases behave the
// same as PostgreSQL.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ProviderProfileModel mirrors the 'provider_profiles' table.
// UserID references users.id and doubles as the primary key (strict 1:1).
type ProviderProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName string    `gorm:"type:varchar(100);not null"`
	Category     string    `gorm:"type:varchar(32);not null;index"`
	Subcategory  string    `gorm:"type:varchar(64)"`
	Description  string    `gorm:"type:text"`
	Location     string    `gorm:"type:varchar(255)"`
	Contact      string    `gorm:"type:varchar(64)"`
	Available    bool      `gorm:"not null;default:false;index"`
	Rating       float64   `gorm:"not null;default:0"`
	ReviewCount  int       `gorm:"not null;default:0"`
	Version      int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProviderProfileModel) TableName() string {
	return "provider_profiles"
}
