// Package repository contains the repository layer for the Yeshua-Christ API
package repository

import (
	"time"

	"github.com/yeshuachrist/ycapi/internal/models"
	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

// NewAdminRepository creates a new repository for admin users and sessions
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

// CountUsers returns the number of admin users
func (r *AdminRepository) CountUsers() (int64, error) {
	var count int64
	err := r.DB.Model(&models.AdminUserModel{}).Count(&count).Error
	return count, err
}

// CreateUser inserts a new admin user
func (r *AdminRepository) CreateUser(user *models.AdminUserModel) error {
	return r.DB.Create(user).Error
}

// GetUserByEmail gets an admin user by normalized email
func (r *AdminRepository) GetUserByEmail(emailLower string) (*models.AdminUserModel, error) {
	var user models.AdminUserModel
	err := r.DB.Where("email_lower = ?", emailLower).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID gets an admin user by id
func (r *AdminRepository) GetUserByID(id uint) (*models.AdminUserModel, error) {
	var user models.AdminUserModel
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored password hash for a user
func (r *AdminRepository) UpdatePasswordHash(id uint, passwordHash string) error {
	return r.DB.Model(&models.AdminUserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": passwordHash, "updated_at": time.Now()}).Error
}

// CreateSession inserts a new admin session record
func (r *AdminRepository) CreateSession(session *models.AdminSessionModel) error {
	return r.DB.Create(session).Error
}

// GetSessionByTokenHash gets a session by its token hash
func (r *AdminRepository) GetSessionByTokenHash(tokenHash string) (*models.AdminSessionModel, error) {
	var session models.AdminSessionModel
	err := r.DB.Where("token_hash = ?", tokenHash).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSessionByTokenHash deletes a session by its token hash
func (r *AdminRepository) DeleteSessionByTokenHash(tokenHash string) (int64, error) {
	result := r.DB.Where("token_hash = ?", tokenHash).Delete(&models.AdminSessionModel{})
	return result.RowsAffected, result.Error
}

// DeleteSessionsForUser deletes all sessions owned by a user
func (r *AdminRepository) DeleteSessionsForUser(adminUserID uint) (int64, error) {
	result := r.DB.Where("admin_user_id = ?", adminUserID).Delete(&models.AdminSessionModel{})
	return result.RowsAffected, result.Error
}

// DeleteExpiredSessions deletes every session with an expiry at or before now
func (r *AdminRepository) DeleteExpiredSessions(now time.Time) (int64, error) {
	result := r.DB.Where("expires_at <= ?", now).Delete(&models.AdminSessionModel{})
	return result.RowsAffected, result.Error
}
