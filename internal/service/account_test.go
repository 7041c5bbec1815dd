package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

const day = 24 * time.Hour

func TestProStatusLifecycle(t *testing.T) {
	t.Parallel()
	app, _, clock := newTestApp(t)
	ctx := context.Background()

	st := app.ProStatus()
	assert.True(t, st.Active)
	assert.Equal(t, service.ProReasonFounder, st.Reason)
	assert.False(t, app.CheckProExpiry(ctx))

	clock.advance(366 * day)
	assert.False(t, app.ProActive())
	assert.True(t, app.CheckProExpiry(ctx), "first check after expiry notifies")
	assert.False(t, app.CheckProExpiry(ctx), "notice is shown once")

	app.SetLegacyPro(ctx, true)
	assert.Equal(t, service.ProReasonLegacy, app.ProStatus().Reason)

	_, err := app.CreateAccount(ctx, "Owner@Example.com", "secret-pass")
	require.NoError(t, err)
	st = app.ProStatus()
	assert.Equal(t, service.ProReasonTrial, st.Reason)
	require.NotNil(t, st.TrialEnds)
	assert.Equal(t, clock.now.Add(30*day), *st.TrialEnds)

	clock.advance(31 * day)
	assert.False(t, app.ProActive(), "manual flag is ignored once an account exists")

	require.NoError(t, app.Subscribe(ctx))
	assert.Equal(t, service.ProReasonSubscription, app.ProStatus().Reason)

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.ProActive(), "logged out accounts are never pro")
	require.ErrorIs(t, app.Subscribe(ctx), service.ErrNotLoggedIn)
}

func TestAccountCredentials(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	require.ErrorIs(t, app.Login(ctx, "a@b.c", "whatever"), service.ErrNoAccount)
	_, err := app.CreateAccount(ctx, "not-an-email", "secret-pass")
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.CreateAccount(ctx, "owner@example.com", "123")
	require.ErrorIs(t, err, engine.ErrInvalidInput)

	acc, err := app.CreateAccount(ctx, "owner@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", acc.Email)
	assert.NotEqual(t, "secret-pass", acc.PasswordHash)
	assert.True(t, acc.LoggedIn)

	_, err = app.CreateAccount(ctx, "other@example.com", "secret-pass")
	require.ErrorIs(t, err, service.ErrAccountExists)

	require.NoError(t, app.Logout(ctx))
	require.ErrorIs(t, app.Login(ctx, "owner@example.com", "wrong-pass"), service.ErrBadCredentials)
	require.ErrorIs(t, app.Login(ctx, "someone@example.com", "secret-pass"), service.ErrBadCredentials)
	require.NoError(t, app.Login(ctx, " OWNER@example.com ", "secret-pass"))
	assert.True(t, app.State().Account.LoggedIn)
}
