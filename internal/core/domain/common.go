package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// Caller is the identity triple supplied by the auth layer for every call.
// Core trusts this triple and never re-derives it.
type Caller struct {
	ID       string
	Role     UserRole
	District string
}
