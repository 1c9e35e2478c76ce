// Package models contains the models for the Yeshua-Christ API
package models

import (
	"strings"
	"time"
)

const AdminUsersTableName = "admin_users"
const AdminSessionsTableName = "admin_sessions"

// AdminUserModel is a credentialed operator of the admin console.
// At most one user exists per normalized email.
type AdminUserModel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmailLower   string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName specifies the table name for the AdminUserModel
func (AdminUserModel) TableName() string {
	return AdminUsersTableName
}

// AdminSessionModel is a bearer-token session record. Only the SHA-256 hash
// of the raw token is stored; the raw token is never persisted.
type AdminSessionModel struct {
	TokenHash   string    `gorm:"primaryKey" json:"-"`
	AdminUserID uint      `gorm:"index;not null" json:"admin_user_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
}

// TableName specifies the table name for the AdminSessionModel
func (AdminSessionModel) TableName() string {
	return AdminSessionsTableName
}

// NormalizeEmail lowercases and trims an email for use as the unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
