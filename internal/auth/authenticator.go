package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", apperr.ErrConflict)
)

const minPasswordLen = 8

type User struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Name  *string `json:"name,omitempty"`
}

type Account struct {
	User
	PasswordHash string
}

// Accounts is the profile storage the authenticator reads and writes.
type Accounts interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	SetRole(ctx context.Context, id, role string) error
}

type Session struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        User      `json:"user"`
}

type SignupInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

type Authenticator interface {
	CurrentUser(ctx context.Context) (*User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Logout(ctx context.Context) error
}

type Service struct {
	accounts Accounts
	ttl      time.Duration
}

func NewService(accounts Accounts, ttl time.Duration) *Service {
	return &Service{accounts: accounts, ttl: ttl}
}

// CurrentUser returns nil without error for anonymous requests.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, nil
	}
	acc, err := s.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	u := acc.User
	return &u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	log := config.WithContext(ctx)

	acc, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Erro ao buscar conta para login")
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		log.WithField("user_id", acc.ID).Warn("Senha incorreta")
		return nil, ErrInvalidCredentials
	}
	return s.issue(acc.User)
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	acc, err := s.register(ctx, in, RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.issue(acc.User)
}

// EnsureAdmin makes sure the profile for email exists with the admin role,
// creating it or promoting an existing one. It is a no-op when email is
// empty.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	log := config.WithContext(ctx).WithField("email", email)

	acc, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		if acc.Role == RoleAdmin {
			return nil
		}
		if err := s.accounts.SetRole(ctx, acc.ID, RoleAdmin); err != nil {
			log.WithError(err).Error("Falha ao promover perfil para admin")
			return err
		}
		log.Info("Perfil promovido para admin")
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	_, err = s.register(ctx, SignupInput{Email: email, Password: password}, RoleAdmin)
	if err == nil {
		log.Info("Perfil admin criado")
	}
	return err
}

func (s *Service) Logout(ctx context.Context) error {
	if claims, err := GetUserClaimsFromContext(ctx); err == nil {
		config.WithContext(ctx).WithField("user_id", claims.UserID).Info("Usuário saiu da sessão")
	}
	return nil
}

func (s *Service) register(ctx context.Context, in SignupInput, role string) (*Account, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", apperr.ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("password must have at least %d characters: %w", minPasswordLen, apperr.ErrValidation)
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acc := &Account{
		User:         User{Email: email, Role: role, Name: in.Name},
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao criar perfil")
		return nil, err
	}
	return acc, nil
}

func (s *Service) issue(u User) (*Session, error) {
	tok, err := generate(Claims{UserID: u.ID, Email: u.Email, Role: u.Role}, s.ttl)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: tok, ExpiresAt: time.Now().Add(s.ttl), User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
