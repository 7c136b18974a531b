package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "argon2id$v=19$m=65536,t=1,p=4$"))

	t.Run("verifies matching password", func(t *testing.T) {
		assert.NoError(t, VerifyPassword(hash, "segredo123"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		assert.ErrorIs(t, VerifyPassword(hash, "segredo124"), errPasswordMismatch)
	})

	t.Run("salts differ", func(t *testing.T) {
		other, err := HashPassword("segredo123")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})

	t.Run("rejects malformed hash", func(t *testing.T) {
		assert.Error(t, VerifyPassword("plain", "x"))
		assert.Error(t, VerifyPassword("argon2id$v=19$m=1,t=1,p=1$!!$!!", "x"))
	})
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, expires, err := issuer.Issue(42, "a@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenIssuer("test-secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, _, err := past.Issue(1, "b@example.com")
		require.NoError(t, err)

		_, err = issuer.Verify(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService(t *testing.T) {
	store := db.NewTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	acct, err := svc.Register(ctx, "  Maria@Example.com ", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", acct.Email)
	assert.Equal(t, "free", acct.Plan)
	assert.NotEqual(t, "segredo", acct.PasswordHash)

	t.Run("register validation", func(t *testing.T) {
		_, err := svc.Register(ctx, "not-an-email", "segredo")
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = svc.Register(ctx, "x@example.com", "12345")
		assert.ErrorIs(t, err, ErrPasswordTooShort)

		_, err = svc.Register(ctx, "MARIA@example.com", "outrasenha")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "maria@example.com", "segredo")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, got.ID)

		_, err = svc.Authenticate(ctx, "maria@example.com", "errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "ninguem@example.com", "segredo")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("change plan", func(t *testing.T) {
		updated, err := svc.ChangePlan(ctx, acct.ID, quota.PlanPro)
		require.NoError(t, err)
		assert.Equal(t, "pro", updated.Plan)

		got, err := svc.Get(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, "pro", got.Plan)

		_, err = svc.ChangePlan(ctx, acct.ID, quota.Plan("gold"))
		assert.Error(t, err)

		_, err = svc.ChangePlan(ctx, 9999, quota.PlanEnterprise)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := svc.Get(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user.name+tag@loja.com.br"))
	assert.False(t, ValidEmail("user@loja"))
	assert.False(t, ValidEmail("@loja.com"))
	assert.False(t, ValidEmail(""))
}
