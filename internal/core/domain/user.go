package domain

import "time"

// Role gates access to admin endpoints.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID                 string     `json:"userID" db:"user_id"`
	Username               string     `json:"username" db:"username"`
	Email                  string     `json:"email" db:"email"`
	Name                   string     `json:"name" db:"name"`
	Role                   Role       `json:"role" db:"role"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	RefreshTokenHash       *string    `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
	AuditFields
	SoftDeleteFields
}

// GetUserID returns the user's ID.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername returns the user's username.
func (u *User) GetUsername() string { return u.Username }

// GetName returns the user's display name.
func (u *User) GetName() string { return u.Name }

// RevokedToken is an access token that was logged out before it expired.
type RevokedToken struct {
	JTI       string    `json:"jti" db:"jti"`
	UserID    string    `json:"userID" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	RevokedAt time.Time `json:"revokedAt" db:"revoked_at"`
}

// PasswordResetToken is a single-use password reset grant. Only the hash of the token is stored.
type PasswordResetToken struct {
	TokenHash string     `json:"-" db:"token_hash"`
	UserID    string     `json:"userID" db:"user_id"`
	ExpiresAt time.Time  `json:"expiresAt" db:"expires_at"`
	UsedAt    *time.Time `json:"usedAt,omitempty" db:"used_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// Usable reports whether the token can still be redeemed at now.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
