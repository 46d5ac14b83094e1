package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// UserStore is the persistence used by the identity service
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// IdentityConfig holds token signing settings
type IdentityConfig struct {
	Secret     string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// UserSummary is the public view of a user
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is returned by register and login
type Session struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Identity registers users and issues and verifies their tokens
type Identity struct {
	store  UserStore
	cfg    IdentityConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewIdentity(store UserStore, cfg IdentityConfig, logger *slog.Logger) (*Identity, error) {
	if len(cfg.Secret) < 16 {
		return nil, fmt.Errorf("jwt secret must be at least 16 characters")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "interniq"
	}

	return &Identity{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Register creates a student account and signs it in
func (s *Identity) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.KindValidation, "name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewError(domain.KindValidation, "email is invalid")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.KindValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.NewError(domain.KindConflict, "user already exists with this email")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", slog.String("user_id", user.ID))

	return s.session(user)
}

// Login verifies credentials. Unknown emails and wrong passwords produce
// the same error.
func (s *Identity) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewError(domain.KindValidation, "email and password are required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.KindInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Info("Invalid password", slog.String("user_id", user.ID))
		return nil, domain.NewError(domain.KindInvalidCredentials, "invalid email or password")
	}

	return s.session(user)
}

// Authenticate verifies a bearer token and returns the caller it names
func (s *Identity) Authenticate(token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, domain.NewError(domain.KindUnauthorized, "not authorized, no token")
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, domain.WrapError(domain.KindUnauthorized, "not authorized, token failed", err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, domain.NewError(domain.KindUnauthorized, "not authorized, token has no subject")
	}

	return domain.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// Me returns the caller's profile
func (s *Identity) Me(ctx context.Context, caller domain.Identity) (*UserSummary, error) {
	user, err := s.store.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	summary := summarize(user)
	return &summary, nil
}

func (s *Identity) session(user *model.User) (*Session, error) {
	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Role: user.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{Token: signed, User: summarize(user)}, nil
}

func summarize(u *model.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
