package app

import (
	"context"
	"errors"
	"time"

	"github.com/abdulachik/descricoes/internal/account"
	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/quota"
)

// Session identifies the account a request acts for.
type Session struct {
	AccountID int64
	Email     string
	Plan      quota.Plan
}

// SessionFor builds a session from a stored account.
func SessionFor(acct db.Account) Session {
	plan, err := quota.ParsePlan(acct.Plan)
	if err != nil {
		plan = quota.PlanFree
	}
	return Session{AccountID: acct.ID, Email: acct.Email, Plan: plan}
}

// AuthResult is returned after registration or login.
type AuthResult struct {
	Account   db.Account `json:"account"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Register creates an account and issues its first token.
func (a *App) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	acct, err := a.Accounts.Register(ctx, email, password)
	if err != nil {
		return nil, accountError(err)
	}
	return a.issue(acct)
}

// Login verifies credentials and issues a token.
func (a *App) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	acct, err := a.Accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.issue(acct)
}

func (a *App) issue(acct db.Account) (*AuthResult, error) {
	token, expires, err := a.Tokens.Issue(acct.ID, acct.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: acct, Token: token, ExpiresAt: expires}, nil
}

// SessionFromToken verifies a token and loads the current account state, so
// plan changes apply without a new login.
func (a *App) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := a.Tokens.Verify(token)
	if err != nil {
		return Session{}, err
	}
	id, err := claims.AccountID()
	if err != nil {
		return Session{}, account.ErrInvalidToken
	}
	return a.Session(ctx, id)
}

// Session loads the session for an account id.
func (a *App) Session(ctx context.Context, accountID int64) (Session, error) {
	acct, err := a.Accounts.Get(ctx, accountID)
	if err != nil {
		return Session{}, err
	}
	return SessionFor(acct), nil
}

// SessionByEmail loads the session for an email address.
func (a *App) SessionByEmail(ctx context.Context, email string) (Session, error) {
	acct, err := a.Store.GetAccountByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		if errors.Is(db.NotFound(err), db.ErrNotFound) {
			return Session{}, account.ErrNotFound
		}
		return Session{}, err
	}
	return SessionFor(acct), nil
}

// ChangePlan switches the session's account to the named plan.
func (a *App) ChangePlan(ctx context.Context, sess Session, planName string) (db.Account, error) {
	plan, err := quota.ParsePlan(planName)
	if err != nil {
		return db.Account{}, &ValidationError{Field: "plan", Message: err.Error()}
	}
	return a.Accounts.ChangePlan(ctx, sess.AccountID, plan)
}

func accountError(err error) error {
	switch {
	case errors.Is(err, account.ErrInvalidEmail):
		return &ValidationError{Field: "email", Message: err.Error()}
	case errors.Is(err, account.ErrPasswordTooShort):
		return &ValidationError{Field: "password", Message: err.Error()}
	}
	return err
}
