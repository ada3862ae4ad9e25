package mapping

import (
	"database/sql"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/openlandreg/land_registry_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	var refreshHash sql.NullString
	if d.RefreshTokenHash != "" {
		refreshHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	var refreshExpiry sql.NullTime
	if d.RefreshTokenExpiryTime != nil {
		refreshExpiry = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	var provider sql.NullString
	if d.AuthProvider != "" {
		provider = sql.NullString{String: d.AuthProvider, Valid: true}
	}
	return models.User{
		UserID:                 d.UserID,
		Username:               d.Username,
		PasswordHash:           d.PasswordHash,
		Name:                   d.Name,
		Email:                  d.Email,
		Role:                   string(d.Role),
		District:               d.District,
		AuthProvider:           provider,
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       refreshHash,
		RefreshTokenExpiryTime: refreshExpiry,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	var refreshExpiry *time.Time
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		refreshExpiry = &t
	}
	return domain.User{
		UserID:                 m.UserID,
		Username:               m.Username,
		PasswordHash:           m.PasswordHash,
		Name:                   m.Name,
		Email:                  m.Email,
		Role:                   domain.UserRole(m.Role),
		District:               m.District,
		AuthProvider:           m.AuthProvider.String,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		DeletedAt:              m.DeletedAt,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: refreshExpiry,
	}
}
