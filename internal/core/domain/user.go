package domain

import "time"

// UserRole identifies which side of the verification pipeline a user sits on.
type UserRole string

const (
	RoleCitizen UserRole = "CITIZEN"
	RoleOfficer UserRole = "OFFICER"
	RoleAdmin   UserRole = "ADMIN"
)

// User represents a user of the application in the domain.
// Officers are the reviewers of land records; admins are the approvers.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	District     string   `json:"district"`
	AuthProvider string   `json:"authProvider,omitempty"` // e.g. "google" for federated sign-in
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// Caller returns the identity triple for this user.
func (u *User) Caller() Caller {
	return Caller{ID: u.UserID, Role: u.Role, District: u.District}
}
