package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"emberarena/internal/models"
	"emberarena/internal/session"
	"emberarena/internal/store"
)

// Auth limits
const (
	MinPasswordLength = 6
	ResetTokenTTL     = time.Hour
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,24}$`)

// Mailer delivers password reset tokens.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer writes reset tokens to the process log. Development only.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	log.Printf("Password reset for %s: token %s", email, token)
	return nil
}

// AuthResult is returned by sign-up and sign-in
type AuthResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	Profile   *models.UserProfile `json:"profile"`
}

// AuthService handles accounts, sign-in sessions and password resets.
type AuthService struct {
	users       store.UserStore
	sessions    store.AuthSessionStore
	resets      store.ResetTokenStore
	issuer      *session.Issuer
	mailer      Mailer
	userService *UserService
	cost        int
	now         func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users store.UserStore,
	sessions store.AuthSessionStore,
	resets store.ResetTokenStore,
	issuer *session.Issuer,
	mailer Mailer,
	userService *UserService,
) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		resets:      resets,
		issuer:      issuer,
		mailer:      mailer,
		userService: userService,
		cost:        bcrypt.DefaultCost,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// SignUp creates an account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, email, password, username, avatar string) (*AuthResult, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if !models.IsStarterAvatar(avatar) {
		return nil, ErrInvalidAvatar
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := models.NewUserProfile(uuid.NewString(), username, email, avatar, now)
	u.PasswordHash = string(hash)
	u.RecordLogin(now)
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.startSession(ctx, u)
}

// SignIn checks credentials, updates the login streak and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	u, err = s.users.RecordLogin(ctx, u.UID, s.now())
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, u)
}

func (s *AuthService) startSession(ctx context.Context, u *models.UserProfile) (*AuthResult, error) {
	token, sessionID, err := s.issuer.Issue(u.UID, u.Role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, sessionID, u.UID, s.issuer.TTL()); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}
	s.userService.Refresh(ctx, u)
	return &AuthResult{
		Token:     token,
		ExpiresAt: s.now().UTC().Add(s.issuer.TTL()),
		Profile:   u,
	}, nil
}

// SignOut revokes the session; the token stops working before it expires.
func (s *AuthService) SignOut(ctx context.Context, sc *session.Context) error {
	return s.sessions.Revoke(ctx, sc.SessionID)
}

// Authenticate resolves a bearer token into a live session context.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*session.Context, error) {
	sc, err := s.issuer.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	uid, err := s.sessions.Lookup(ctx, sc.SessionID)
	if errors.Is(err, models.ErrSessionNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if uid != sc.UserID {
		return nil, ErrUnauthenticated
	}
	return sc, nil
}

// RequestPasswordReset mails a single-use token. Unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	token := uuid.NewString()
	if err := s.resets.Issue(ctx, token, u.UID, ResetTokenTTL); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, u.Email, token); err != nil {
		log.Printf("Password reset mail failed for %s: %v", u.UID, err)
	}
	return nil
}

// ConfirmPasswordReset consumes the token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}
	uid, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, uid, string(hash))
}
