package domain

import "time"

// UserRole defines the authorization role of a user.
type UserRole string

const (
	RoleMember UserRole = "MEMBER"
	RoleAdmin  UserRole = "ADMIN"
)

// UserStatus tracks the admin approval workflow for new registrations.
type UserStatus string

const (
	UserPending  UserStatus = "PENDING"
	UserApproved UserStatus = "APPROVED"
	UserRejected UserStatus = "REJECTED"
)

// User represents an account holder. Payouts require an EVM-compatible
// address; users without one are still usable but are reported as issues by
// the payout aggregator.
type User struct {
	UserID       string     `json:"userID"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	EVMAddress   string     `json:"evmAddress"` // empty when the user has not set one
	AuthProvider string     `json:"authProvider,omitempty"`
	ProviderID   string     `json:"-"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
