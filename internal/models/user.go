package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Name         string         `db:"name"`
	Role         string         `db:"role"`
	Status       string         `db:"status"`
	EVMAddress   sql.NullString `db:"evm_address"`
	AuthProvider sql.NullString `db:"auth_provider"`
	ProviderID   sql.NullString `db:"provider_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
