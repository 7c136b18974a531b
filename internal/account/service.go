// Package account registers users, verifies their credentials and manages
// their plan.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/quota"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = fmt.Errorf("password must have at least %d characters", MinPasswordLength)
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("account not found")
)

// Service handles account lifecycle operations.
type Service struct {
	store *db.Store
}

// NewService creates an account service backed by store.
func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email has a plausible address shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Register creates a free-plan account.
func (s *Service) Register(ctx context.Context, email, password string) (db.Account, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return db.Account{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return db.Account{}, ErrPasswordTooShort
	}

	if _, err := s.store.GetAccountByEmail(ctx, email); err == nil {
		return db.Account{}, ErrEmailTaken
	} else if !errors.Is(db.NotFound(err), db.ErrNotFound) {
		return db.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return db.Account{}, err
	}

	acct, err := s.store.CreateAccount(ctx, db.CreateAccountParams{
		Email:        email,
		PasswordHash: hash,
		Plan:         quota.PlanFree.String(),
	})
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return db.Account{}, ErrEmailTaken
		}
		return db.Account{}, fmt.Errorf("create account: %w", err)
	}

	slog.Info("account registered", "account_id", acct.ID)
	return acct, nil
}

// Authenticate returns the account whose credentials match.
func (s *Service) Authenticate(ctx context.Context, email, password string) (db.Account, error) {
	acct, err := s.store.GetAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(db.NotFound(err), db.ErrNotFound) {
			return db.Account{}, ErrInvalidCredentials
		}
		return db.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := VerifyPassword(acct.PasswordHash, password); err != nil {
		if !errors.Is(err, errPasswordMismatch) {
			slog.Warn("stored password hash unreadable", "account_id", acct.ID, "error", err)
		}
		return db.Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// Get loads an account by id.
func (s *Service) Get(ctx context.Context, id int64) (db.Account, error) {
	acct, err := s.store.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(db.NotFound(err), db.ErrNotFound) {
			return db.Account{}, ErrNotFound
		}
		return db.Account{}, fmt.Errorf("get account: %w", err)
	}
	return acct, nil
}

// ChangePlan switches the account to plan. No payment is involved.
func (s *Service) ChangePlan(ctx context.Context, id int64, plan quota.Plan) (db.Account, error) {
	plan, err := quota.ParsePlan(plan.String())
	if err != nil {
		return db.Account{}, err
	}

	acct, err := s.store.UpdateAccountPlan(ctx, db.UpdateAccountPlanParams{ID: id, Plan: plan.String()})
	if err != nil {
		if errors.Is(db.NotFound(err), db.ErrNotFound) {
			return db.Account{}, ErrNotFound
		}
		return db.Account{}, fmt.Errorf("update plan: %w", err)
	}

	slog.Info("plan changed", "account_id", id, "plan", acct.Plan)
	return acct, nil
}
