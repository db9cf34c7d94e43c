// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carterperez-dev/bakery-backoffice/internal/account"
	"github.com/carterperez-dev/bakery-backoffice/internal/core"
)

type fakeDirectory struct {
	accounts  map[string]*account.Identity
	passwords map[int64]string

	changedHashes map[int64]string
	registered    []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		accounts:      make(map[string]*account.Identity),
		passwords:     make(map[int64]string),
		changedHashes: make(map[int64]string),
	}
}

func (f *fakeDirectory) GetByEmail(
	_ context.Context,
	email string,
) (*account.Identity, error) {
	if identity, ok := f.accounts[email]; ok {
		return identity, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeDirectory) GetCustomer(
	_ context.Context,
	id int64,
) (*account.CustomerView, error) {
	return &account.CustomerView{
		ID:       id,
		Fullname: "Jo Baker",
		Email:    "jo@example.com",
		Role:     account.RoleCustomer,
	}, nil
}

func (f *fakeDirectory) RegisterCustomer(
	_ context.Context,
	email, _, _ string,
) (*account.SignUpResult, error) {
	for _, existing := range f.registered {
		if existing == email {
			return nil, core.ErrDuplicateKey
		}
	}
	f.registered = append(f.registered, email)
	return &account.SignUpResult{ID: 1, Email: email}, nil
}

func (f *fakeDirectory) GetPassword(
	_ context.Context,
	id int64,
) (string, error) {
	if hash, ok := f.passwords[id]; ok {
		return hash, nil
	}
	return "", core.ErrNotFound
}

func (f *fakeDirectory) ChangePassword(
	_ context.Context,
	id int64,
	newHash string,
) error {
	f.changedHashes[id] = newHash
	return nil
}

type fakeSessions struct {
	store map[string]*Session

	revokedFamilies []string
	revokedUsers    []string
	deleted         []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{store: make(map[string]*Session)}
}

func (f *fakeSessions) Create(
	_ context.Context,
	tokenHash string,
	session *Session,
) error {
	f.store[tokenHash] = session
	return nil
}

func (f *fakeSessions) Find(
	_ context.Context,
	tokenHash string,
) (*Session, error) {
	if session, ok := f.store[tokenHash]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeSessions) MarkUsed(
	_ context.Context,
	tokenHash string,
	session *Session,
) error {
	session.Used = true
	f.store[tokenHash] = session
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, tokenHash string) error {
	delete(f.store, tokenHash)
	f.deleted = append(f.deleted, tokenHash)
	return nil
}

func (f *fakeSessions) RevokeFamily(
	_ context.Context,
	userID, familyID string,
) error {
	f.revokedFamilies = append(f.revokedFamilies, familyID)
	for hash, session := range f.store {
		if session.UserID == userID && session.FamilyID == familyID {
			delete(f.store, hash)
		}
	}
	return nil
}

func (f *fakeSessions) RevokeAll(_ context.Context, userID string) error {
	f.revokedUsers = append(f.revokedUsers, userID)
	for hash, session := range f.store {
		if session.UserID == userID {
			delete(f.store, hash)
		}
	}
	return nil
}

func newTestService(
	t *testing.T,
) (*Service, *fakeDirectory, *fakeSessions) {
	t.Helper()

	directory := newFakeDirectory()
	sessions := newFakeSessions()
	svc := NewService(directory, newTestJWTManager(t), sessions)
	return svc, directory, sessions
}

func seedAccount(
	t *testing.T,
	directory *fakeDirectory,
	email, password string,
) *account.Identity {
	t.Helper()

	hash, err := core.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	identity := &account.Identity{
		ID:       42,
		Fullname: "Jo Baker",
		Email:    email,
		Password: hash,
		Role:     account.RoleCustomer,
	}
	directory.accounts[email] = identity
	directory.passwords[identity.ID] = hash
	return identity
}

func TestLoginSuccess(t *testing.T) {
	svc, directory, sessions := newTestService(t)
	seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jo@example.com",
		Password: "pa55word-pa55word",
	}, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.User.ID != 42 || resp.User.Role != "customer" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("tokens missing")
	}
	if len(sessions.store) != 1 {
		t.Errorf("expected one stored session, got %d", len(sessions.store))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, directory, _ := newTestService(t)
	seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jo@example.com",
		Password: "not-the-password",
	}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := RegisterRequest{
		Email:           "new@example.com",
		Password:        "pa55word-pa55word",
		ConfirmPassword: "pa55word-pa55word",
		Name:            "Jo Baker",
	}

	if _, err := svc.Register(context.Background(), req, "", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req, "", "")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, directory, sessions := newTestService(t)
	seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	loginResp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jo@example.com",
		Password: "pa55word-pa55word",
	}, "", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshResp, err := svc.Refresh(
		context.Background(),
		loginResp.Tokens.RefreshToken,
		"",
		"",
	)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if refreshResp.Tokens.RefreshToken == loginResp.Tokens.RefreshToken {
		t.Error("refresh must mint a new token")
	}

	oldHash := core.HashToken(loginResp.Tokens.RefreshToken)
	if !sessions.store[oldHash].Used {
		t.Error("old session must be marked used")
	}
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	svc, directory, sessions := newTestService(t)
	seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	loginResp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jo@example.com",
		Password: "pa55word-pa55word",
	}, "", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	token := loginResp.Tokens.RefreshToken
	if _, err := svc.Refresh(context.Background(), token, "", ""); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	_, err = svc.Refresh(context.Background(), token, "", "")
	if !errors.Is(err, ErrTokenReuse) {
		t.Fatalf("expected ErrTokenReuse, got %v", err)
	}
	if len(sessions.revokedFamilies) != 1 {
		t.Errorf(
			"expected one family revocation, got %v",
			sessions.revokedFamilies,
		)
	}
}

func TestRefreshExpiredSession(t *testing.T) {
	svc, _, sessions := newTestService(t)

	token := "stale-refresh-token"
	sessions.store[core.HashToken(token)] = &Session{
		UserID:    "42",
		FamilyID:  "fam-1",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	_, err := svc.Refresh(context.Background(), token, "", "")
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestLogoutOwnershipEnforced(t *testing.T) {
	svc, directory, _ := newTestService(t)
	seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	loginResp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jo@example.com",
		Password: "pa55word-pa55word",
	}, "", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	err = svc.Logout(context.Background(), loginResp.Tokens.RefreshToken, "99")
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := svc.Logout(
		context.Background(),
		loginResp.Tokens.RefreshToken,
		"42",
	); err != nil {
		t.Fatalf("owner logout: %v", err)
	}
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Logout(context.Background(), "ghost", "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, directory, sessions := newTestService(t)
	identity := seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jo@example.com",
		Password: "pa55word-pa55word",
	}, "", ""); err != nil {
		t.Fatalf("login: %v", err)
	}

	err := svc.ChangePassword(
		context.Background(),
		identity.ID,
		"pa55word-pa55word",
		"brand-new-pa55word",
	)
	if err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, ok := directory.changedHashes[identity.ID]; !ok {
		t.Error("password hash not rotated")
	}
	if len(sessions.revokedUsers) != 1 || sessions.revokedUsers[0] != "42" {
		t.Errorf("expected sessions revoked for 42, got %v", sessions.revokedUsers)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, directory, _ := newTestService(t)
	identity := seedAccount(t, directory, "jo@example.com", "pa55word-pa55word")

	err := svc.ChangePassword(
		context.Background(),
		identity.ID,
		"wrong-current",
		"brand-new-pa55word",
	)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
