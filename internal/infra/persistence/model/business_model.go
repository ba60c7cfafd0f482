// Package model contains the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"joylist/internal/domain/entity"

	"github.com/google/uuid"
)

// BusinessModel mirrors the 'businesses' table. PostgreSQL generates UUIDs
// via gen_random_uuid(). UserID references the identity-provider user ID and
// is indexed for the per-profile listing query.
type BusinessModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    string    `gorm:"type:varchar(64);not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Type      string    `gorm:"type:varchar(100)"`
	URL       string    `gorm:"type:varchar(2048);not null"`
	Phone     string    `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain maps the persistence model back to a pure domain entity.
func (m *BusinessModel) ToDomain() *entity.Business {
	return &entity.Business{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Type:      m.Type,
		URL:       m.URL,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain maps a domain entity to its persistence model.
func FromDomain(business *entity.Business) *BusinessModel {
	return &BusinessModel{
		ID:        business.ID,
		UserID:    business.UserID,
		Name:      business.Name,
		Type:      business.Type,
		URL:       business.URL,
		Phone:     business.Phone,
		CreatedAt: business.CreatedAt,
		UpdatedAt: business.UpdatedAt,
	}
}
