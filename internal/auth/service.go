// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/carterperez-dev/bakery-backoffice/internal/account"
	"github.com/carterperez-dev/bakery-backoffice/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
	ErrEmailExists        = errors.New("email already exists")
)

// Directory is the slice of the account service the auth flow depends on.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (*account.Identity, error)
	GetCustomer(ctx context.Context, id int64) (*account.CustomerView, error)
	RegisterCustomer(
		ctx context.Context,
		email, passwordHash, fullname string,
	) (*account.SignUpResult, error)
	GetPassword(ctx context.Context, id int64) (string, error)
	ChangePassword(ctx context.Context, id int64, newHash string) error
}

// Sessions is the refresh-session surface the auth flow needs; implemented
// by SessionStore.
type Sessions interface {
	Create(ctx context.Context, tokenHash string, session *Session) error
	Find(ctx context.Context, tokenHash string) (*Session, error)
	MarkUsed(ctx context.Context, tokenHash string, session *Session) error
	Delete(ctx context.Context, tokenHash string) error
	RevokeFamily(ctx context.Context, userID, familyID string) error
	RevokeAll(ctx context.Context, userID string) error
}

type Service struct {
	directory Directory
	jwt       *JWTManager
	sessions  Sessions
}

func NewService(
	directory Directory,
	jwt *JWTManager,
	sessions Sessions,
) *Service {
	return &Service{
		directory: directory,
		jwt:       jwt,
		sessions:  sessions,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	identity, err := s.directory.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&identity.Password,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.directory.ChangePassword(ctx, identity.ID, newHash)
	}

	user := UserResponse{
		ID:       identity.ID,
		Email:    identity.Email,
		Fullname: identity.Fullname,
		Role:     identity.Role.String(),
	}

	return s.createAuthResponse(ctx, user, userAgent, ipAddress, "")
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.directory.RegisterCustomer(
		ctx,
		req.Email,
		passwordHash,
		req.Name,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("register customer: %w", err)
	}

	user := UserResponse{
		ID:       created.ID,
		Email:    created.Email,
		Fullname: req.Name,
		Role:     account.RoleCustomer.String(),
	}

	return s.createAuthResponse(ctx, user, userAgent, ipAddress, "")
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	tokenHash := core.HashToken(refreshToken)

	session, err := s.sessions.Find(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	if session.Used {
		//nolint:errcheck // security revocation continues regardless
		_ = s.sessions.RevokeFamily(ctx, session.UserID, session.FamilyID)
		return nil, ErrTokenReuse
	}

	if session.IsExpired() {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	userID, err := strconv.ParseInt(session.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
	}

	view, err := s.directory.GetCustomer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	if err := s.sessions.MarkUsed(ctx, tokenHash, session); err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	user := UserResponse{
		ID:       view.ID,
		Email:    view.Email,
		Fullname: view.Fullname,
		Role:     view.Role.String(),
	}

	return s.createAuthResponse(
		ctx,
		user,
		userAgent,
		ipAddress,
		session.FamilyID,
	)
}

func (s *Service) Logout(
	ctx context.Context,
	refreshToken, userID string,
) error {
	tokenHash := core.HashToken(refreshToken)

	session, err := s.sessions.Find(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find session: %w", err)
	}

	if userID != "" && session.UserID != userID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	return s.sessions.Delete(ctx, tokenHash)
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if err := s.sessions.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}
	return nil
}

// ChangePassword verifies the current password before rotating the hash,
// then drops every refresh session so stolen tokens die with the old
// password.
func (s *Service) ChangePassword(
	ctx context.Context,
	userID int64,
	currentPassword, newPassword string,
) error {
	storedHash, err := s.directory.GetPassword(ctx, userID)
	if err != nil {
		return fmt.Errorf("get password: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		currentPassword,
		storedHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.directory.ChangePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	return s.LogoutAll(ctx, strconv.FormatInt(userID, 10))
}

func (s *Service) createAuthResponse(
	ctx context.Context,
	user UserResponse,
	userAgent, ipAddress, familyID string,
) (*AuthResponse, error) {
	subject := strconv.FormatInt(user.ID, 10)

	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: subject,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.CreateRefreshToken(familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	session := &Session{
		UserID:    subject,
		FamilyID:  refreshData.FamilyID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
		ExpiresAt: refreshData.ExpiresAt,
	}

	if err := s.sessions.Create(ctx, refreshData.Hash, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	ttl := s.jwt.AccessTokenTTL()

	return &AuthResponse{
		User: user,
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(ttl / time.Second),
			ExpiresAt:    time.Now().Add(ttl),
		},
	}, nil
}
