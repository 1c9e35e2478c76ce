package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yeshuachrist/ycapi/internal/config"
	"github.com/yeshuachrist/ycapi/internal/models"
	"github.com/yeshuachrist/ycapi/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "yc_admin_session"

const (
	bcryptCost        = 12
	minPasswordLength = 10
	sessionTokenBytes = 32
)

// AdminStore is the persistence surface the auth service needs. Implemented
// by repository.AdminRepository; missing records surface as
// gorm.ErrRecordNotFound.
type AdminStore interface {
	CountUsers() (int64, error)
	CreateUser(user *models.AdminUserModel) error
	GetUserByEmail(emailLower string) (*models.AdminUserModel, error)
	GetUserByID(id uint) (*models.AdminUserModel, error)
	UpdatePasswordHash(id uint, passwordHash string) error
	CreateSession(session *models.AdminSessionModel) error
	GetSessionByTokenHash(tokenHash string) (*models.AdminSessionModel, error)
	DeleteSessionByTokenHash(tokenHash string) (int64, error)
	DeleteSessionsForUser(adminUserID uint) (int64, error)
	DeleteExpiredSessions(now time.Time) (int64, error)
}

// AuthService issues, validates and revokes admin sessions. Raw tokens are
// handed to the caller exactly once; only their SHA-256 hash is stored.
type AuthService struct {
	repo AdminStore
	cfg  *config.Config
}

// NewAuthService creates a new service for admin authentication
func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		repo: repository.NewAdminRepository(db),
		cfg:  cfg,
	}
}

// RandomToken generates an opaque session token with 256 bits of entropy
func RandomToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken derives the storage key for a raw session token
func HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// dummyPasswordHash is compared against when the user does not exist, so the
// login path costs the same whether or not the email is registered.
func dummyPasswordHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("yc-dummy-credential"), bcryptCost)
	})
	return dummyHash
}

func validEmail(email string) bool {
	v := strings.TrimSpace(email)
	return len(v) >= 6 && len(v) <= 254 && strings.Contains(v, "@")
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}

// EnsureBootstrapAdmin creates the configured bootstrap admin when no admin
// user exists yet. A no-op when bootstrap credentials are not configured.
func (s *AuthService) EnsureBootstrapAdmin() error {
	if s.cfg.AdminBootstrapEmail == "" || s.cfg.AdminBootstrapPassword == "" {
		return nil
	}
	count, err := s.repo.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminBootstrapPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %v", err)
	}
	return s.repo.CreateUser(&models.AdminUserModel{
		EmailLower:   models.NormalizeEmail(s.cfg.AdminBootstrapEmail),
		PasswordHash: string(passwordHash),
	})
}

// Login checks the credential pair and returns the matching admin user. A
// bcrypt comparison runs whether or not the user exists.
func (s *AuthService) Login(email, password string) (*models.AdminUserModel, error) {
	user, err := s.repo.GetUserByEmail(models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(password))
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// IssueSession creates a session for the user and returns the raw token and
// its expiry. The raw token cannot be recovered afterwards.
func (s *AuthService) IssueSession(adminUserID uint) (string, time.Time, error) {
	rawToken, err := RandomToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.SessionDays()) * 24 * time.Hour)
	session := &models.AdminSessionModel{
		TokenHash:   HashToken(rawToken),
		AdminUserID: adminUserID,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}
	if err := s.repo.CreateSession(session); err != nil {
		return "", time.Time{}, err
	}
	return rawToken, expiresAt, nil
}

// ValidateSession resolves a raw token to its owning admin user. Expired
// sessions are deleted on the way out; expired, unknown and orphaned tokens
// all collapse to ErrUnauthenticated.
func (s *AuthService) ValidateSession(rawToken string) (*models.AdminUserModel, error) {
	tokenHash := HashToken(rawToken)
	session, err := s.repo.GetSessionByTokenHash(tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if !session.ExpiresAt.After(time.Now()) {
		// Lazy cleanup; re-validation of the same token lands on the
		// not-found path above with the same outcome.
		if _, err := s.repo.DeleteSessionByTokenHash(tokenHash); err != nil {
			return nil, err
		}
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(session.AdminUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// RevokeSession deletes the session for a raw token. Absent tokens are a no-op.
func (s *AuthService) RevokeSession(rawToken string) error {
	_, err := s.repo.DeleteSessionByTokenHash(HashToken(rawToken))
	return err
}

// RevokeAllSessions deletes every session owned by the user
func (s *AuthService) RevokeAllSessions(adminUserID uint) error {
	_, err := s.repo.DeleteSessionsForUser(adminUserID)
	return err
}

// VerifyPassword checks a candidate password against the user's stored hash
func (s *AuthService) VerifyPassword(user *models.AdminUserModel, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// SetPassword re-hashes and stores a new password for the user
func (s *AuthService) SetPassword(adminUserID uint, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	return s.repo.UpdatePasswordHash(adminUserID, string(passwordHash))
}

// ChangePassword rotates the user's password and sessions: the current
// password must verify, every existing session is revoked, and exactly one
// fresh session is issued for the caller.
func (s *AuthService) ChangePassword(user *models.AdminUserModel, currentPassword, newPassword string) (string, time.Time, error) {
	if !s.VerifyPassword(user, currentPassword) {
		return "", time.Time{}, fmt.Errorf("%w: invalid current password", ErrValidation)
	}
	if err := s.SetPassword(user.ID, newPassword); err != nil {
		return "", time.Time{}, err
	}
	if err := s.RevokeAllSessions(user.ID); err != nil {
		return "", time.Time{}, err
	}
	return s.IssueSession(user.ID)
}

// CreateAdminUser creates a new credentialed operator
func (s *AuthService) CreateAdminUser(email, password string) (*models.AdminUserModel, error) {
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	emailLower := models.NormalizeEmail(email)
	if _, err := s.repo.GetUserByEmail(emailLower); err == nil {
		return nil, fmt.Errorf("%w: admin user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user := &models.AdminUserModel{
		EmailLower:   emailLower,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// PurgeExpiredSessions removes every expired session record
func (s *AuthService) PurgeExpiredSessions() (int64, error) {
	return s.repo.DeleteExpiredSessions(time.Now())
}
