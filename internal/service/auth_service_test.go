package service

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/yeshuachrist/ycapi/internal/config"
	"github.com/yeshuachrist/ycapi/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeAdminStore is an in-memory AdminStore for exercising the session
// lifecycle without a database.
type fakeAdminStore struct {
	users    map[uint]*models.AdminUserModel
	sessions map[string]*models.AdminSessionModel
	nextID   uint
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{
		users:    make(map[uint]*models.AdminUserModel),
		sessions: make(map[string]*models.AdminSessionModel),
	}
}

func (f *fakeAdminStore) CountUsers() (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeAdminStore) CreateUser(user *models.AdminUserModel) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeAdminStore) GetUserByEmail(emailLower string) (*models.AdminUserModel, error) {
	for _, user := range f.users {
		if user.EmailLower == emailLower {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminStore) GetUserByID(id uint) (*models.AdminUserModel, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeAdminStore) UpdatePasswordHash(id uint, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeAdminStore) CreateSession(session *models.AdminSessionModel) error {
	f.sessions[session.TokenHash] = session
	return nil
}

func (f *fakeAdminStore) GetSessionByTokenHash(tokenHash string) (*models.AdminSessionModel, error) {
	session, ok := f.sessions[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (f *fakeAdminStore) DeleteSessionByTokenHash(tokenHash string) (int64, error) {
	if _, ok := f.sessions[tokenHash]; !ok {
		return 0, nil
	}
	delete(f.sessions, tokenHash)
	return 1, nil
}

func (f *fakeAdminStore) DeleteSessionsForUser(adminUserID uint) (int64, error) {
	var deleted int64
	for hash, session := range f.sessions {
		if session.AdminUserID == adminUserID {
			delete(f.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeAdminStore) DeleteExpiredSessions(now time.Time) (int64, error) {
	var deleted int64
	for hash, session := range f.sessions {
		if !session.ExpiresAt.After(now) {
			delete(f.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

func newTestAuthService(store AdminStore) *AuthService {
	return &AuthService{repo: store, cfg: &config.Config{}}
}

func TestRandomToken(t *testing.T) {
	token, err := RandomToken()
	if err != nil {
		t.Fatalf("RandomToken() error: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not base64url: %v", err)
	}
	if len(raw) != sessionTokenBytes {
		t.Errorf("token has %d bytes of entropy, want %d", len(raw), sessionTokenBytes)
	}

	other, err := RandomToken()
	if err != nil {
		t.Fatalf("RandomToken() error: %v", err)
	}
	if token == other {
		t.Error("two tokens are identical")
	}
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-raw-token")

	if hash == "some-raw-token" {
		t.Fatal("hash equals the raw token")
	}
	raw, err := hex.DecodeString(hash)
	if err != nil {
		t.Fatalf("hash is not hex: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("hash is %d bytes, want 32", len(raw))
	}

	if HashToken("some-raw-token") != hash {
		t.Error("hashing is not deterministic")
	}
	if HashToken("other-token") == hash {
		t.Error("distinct tokens share a hash")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := validatePassword("short"); !errors.Is(err, ErrValidation) {
		t.Errorf("short password: got %v, want ErrValidation", err)
	}
	if err := validatePassword("long-enough-password"); err != nil {
		t.Errorf("valid password: got %v, want nil", err)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"no-at-sign", false},
		{"a@b", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validEmail(tt.email); got != tt.want {
			t.Errorf("validEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateSessionDeletesExpiredRecord(t *testing.T) {
	store := newFakeAdminStore()
	svc := newTestAuthService(store)

	user, err := svc.CreateAdminUser("admin@example.com", "password-12345")
	if err != nil {
		t.Fatalf("CreateAdminUser() error: %v", err)
	}
	token, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}

	store.sessions[HashToken(token)].ExpiresAt = time.Now().Add(-time.Minute)

	if _, err := svc.ValidateSession(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expired token: got %v, want ErrUnauthenticated", err)
	}
	if _, ok := store.sessions[HashToken(token)]; ok {
		t.Error("expired session record was not deleted")
	}

	// Re-validating the same token must land on the same outcome.
	if _, err := svc.ValidateSession(token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("re-validation: got %v, want ErrUnauthenticated", err)
	}
}

func TestValidateSessionResolvesOwner(t *testing.T) {
	store := newFakeAdminStore()
	svc := newTestAuthService(store)

	user, err := svc.CreateAdminUser("admin@example.com", "password-12345")
	if err != nil {
		t.Fatalf("CreateAdminUser() error: %v", err)
	}
	token, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}

	got, err := svc.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession() error: %v", err)
	}
	if got.EmailLower != "admin@example.com" {
		t.Errorf("resolved email = %q", got.EmailLower)
	}

	if _, err := svc.ValidateSession("not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("unknown token: got %v, want ErrUnauthenticated", err)
	}
}

func TestChangePasswordRotatesEverySession(t *testing.T) {
	store := newFakeAdminStore()
	svc := newTestAuthService(store)

	user, err := svc.CreateAdminUser("admin@example.com", "password-12345")
	if err != nil {
		t.Fatalf("CreateAdminUser() error: %v", err)
	}
	first, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}
	second, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}

	fresh, _, err := svc.ChangePassword(user, "password-12345", "next-password-1")
	if err != nil {
		t.Fatalf("ChangePassword() error: %v", err)
	}

	if _, err := svc.ValidateSession(first); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("first prior session survived: %v", err)
	}
	if _, err := svc.ValidateSession(second); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("second prior session survived: %v", err)
	}
	if _, err := svc.ValidateSession(fresh); err != nil {
		t.Errorf("fresh session does not validate: %v", err)
	}
	if len(store.sessions) != 1 {
		t.Errorf("%d sessions remain, want exactly 1", len(store.sessions))
	}

	if _, err := svc.Login("admin@example.com", "password-12345"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("old password still logs in: %v", err)
	}
	if _, err := svc.Login("admin@example.com", "next-password-1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestChangePasswordWrongCurrentKeepsSessions(t *testing.T) {
	store := newFakeAdminStore()
	svc := newTestAuthService(store)

	user, err := svc.CreateAdminUser("admin@example.com", "password-12345")
	if err != nil {
		t.Fatalf("CreateAdminUser() error: %v", err)
	}
	token, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}

	if _, _, err := svc.ChangePassword(user, "wrong-password", "next-password-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if _, err := svc.ValidateSession(token); err != nil {
		t.Errorf("existing session was revoked on a failed change: %v", err)
	}
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc := &AuthService{repo: store, cfg: &config.Config{
		AdminBootstrapEmail:    "Boot@Example.com",
		AdminBootstrapPassword: "bootstrap-pass-1",
	}}

	if err := svc.EnsureBootstrapAdmin(); err != nil {
		t.Fatalf("EnsureBootstrapAdmin() error: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("%d users created, want 1", len(store.users))
	}
	if _, err := svc.Login("boot@example.com", "bootstrap-pass-1"); err != nil {
		t.Errorf("bootstrap admin cannot log in: %v", err)
	}

	// A second call must not create another user.
	if err := svc.EnsureBootstrapAdmin(); err != nil {
		t.Fatalf("EnsureBootstrapAdmin() error: %v", err)
	}
	if len(store.users) != 1 {
		t.Errorf("%d users after second call, want 1", len(store.users))
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	store := newFakeAdminStore()
	svc := newTestAuthService(store)

	user, err := svc.CreateAdminUser("admin@example.com", "password-12345")
	if err != nil {
		t.Fatalf("CreateAdminUser() error: %v", err)
	}
	expired, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}
	live, _, err := svc.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("IssueSession() error: %v", err)
	}
	store.sessions[HashToken(expired)].ExpiresAt = time.Now().Add(-time.Hour)

	purged, err := svc.PurgeExpiredSessions()
	if err != nil {
		t.Fatalf("PurgeExpiredSessions() error: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
	if _, err := svc.ValidateSession(live); err != nil {
		t.Errorf("live session was purged: %v", err)
	}
}

func TestDummyPasswordHash(t *testing.T) {
	hash := dummyPasswordHash()
	if len(hash) == 0 {
		t.Fatal("dummy hash is empty")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("yc-dummy-credential")); err != nil {
		t.Errorf("dummy hash does not verify its own credential: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("anything else")); err == nil {
		t.Error("dummy hash verifies an arbitrary password")
	}
}
