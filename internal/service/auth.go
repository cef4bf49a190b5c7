package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/feb_ecommerce/internal/hash"
	"github.com/Skotchmaster/feb_ecommerce/internal/logging"
	"github.com/Skotchmaster/feb_ecommerce/internal/models"
	"github.com/Skotchmaster/feb_ecommerce/internal/mykafka"
	"github.com/Skotchmaster/feb_ecommerce/internal/repo"
	"github.com/Skotchmaster/feb_ecommerce/internal/tokens"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

type AuthService struct {
	Repo      *repo.GormRepo
	Tokens    *tokens.Issuer
	Publisher Publisher
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Email     string
	IsAdmin   bool
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnCompare spends the same bcrypt work as a real comparison so that an
// unknown email is not distinguishable by latency.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = hash.HashPassword("dummy-password")
	})
	hash.CheckPassword(dummyHash, password)
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
	}

	err = s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		return tx.CreateUser(ctx, &user)
	})
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 409, "reason", "email already exists")
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Publisher, mykafka.UserEvents, identityOf(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			burnCompare(req.Password)
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
	}, nil
}

// IsAdmin resolves the caller and reports its is_admin flag. An identity
// that matches no user is not an admin.
func (s *AuthService) IsAdmin(ctx context.Context, identity string) (bool, error) {
	id, err := ParseIdentity(identity)
	if err != nil {
		return false, nil
	}
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	return user.IsAdmin, nil
}

// Me returns the caller together with the products it owns.
func (s *AuthService) Me(ctx context.Context, identity string) (*models.User, []models.Product, error) {
	id, err := ParseIdentity(identity)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	products, err := s.Repo.GetProductsByOwner(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("find products: %w", err)
	}
	return user, products, nil
}
