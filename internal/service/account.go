package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

var (
	ErrAccountExists  = errors.New("an account already exists on this device")
	ErrNoAccount      = errors.New("no account on this device")
	ErrBadCredentials = errors.New("email or password is incorrect")
	ErrNotLoggedIn    = errors.New("not logged in")
)

const (
	minPasswordLength = 6
	passwordHashCost  = bcrypt.DefaultCost
)

// CreateAccount stores a local account and starts the 30-day trial. There
// is no server; the password only guards this device's profile.
func (a *App) CreateAccount(ctx context.Context, email, password string) (model.Account, error) {
	if a.state.Account != nil {
		return model.Account{}, ErrAccountExists
	}
	email = normalizeName(email)
	if email == "" || !strings.Contains(email, "@") {
		return model.Account{}, fmt.Errorf("a valid email is required: %w", engine.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return model.Account{}, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, engine.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}
	now := a.clock.Now()
	a.state.Account = &model.Account{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LoggedIn:     true,
		TrialStart:   &now,
	}
	a.save(ctx)
	return *a.state.Account, nil
}

func (a *App) Login(ctx context.Context, email, password string) error {
	acc := a.state.Account
	if acc == nil {
		return ErrNoAccount
	}
	if normalizeName(email) != acc.Email {
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	acc.LoggedIn = true
	a.save(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if a.state.Account == nil {
		return ErrNoAccount
	}
	a.state.Account.LoggedIn = false
	a.save(ctx)
	return nil
}

// Subscribe records a subscription start for the logged-in account. No
// payment is taken.
func (a *App) Subscribe(ctx context.Context) error {
	acc := a.state.Account
	if acc == nil {
		return ErrNoAccount
	}
	if !acc.LoggedIn {
		return ErrNotLoggedIn
	}
	if acc.SubscriptionStart == nil {
		now := a.clock.Now()
		acc.SubscriptionStart = &now
	}
	a.save(ctx)
	return nil
}

// SetLegacyPro toggles the manual Pro flag honoured only when no account
// was ever created.
func (a *App) SetLegacyPro(ctx context.Context, on bool) {
	a.state.Settings.IsPro = on
	a.save(ctx)
}

type ProStatus struct {
	Active    bool       `json:"active"`
	Reason    string     `json:"reason"`
	Expiry    time.Time  `json:"founder_expiry"`
	TrialEnds *time.Time `json:"trial_ends,omitempty"`
}

const (
	ProReasonFounder      = "founder"
	ProReasonTrial        = "trial"
	ProReasonSubscription = "subscription"
	ProReasonLegacy       = "manual"
	ProReasonNone         = "none"
)

// ProStatus evaluates, in order: the founder year, then a logged-in
// account's trial or subscription, then the manual flag when no account
// exists. A logged-out account is never Pro.
func (a *App) ProStatus() ProStatus {
	now := a.clock.Now()
	st := ProStatus{Expiry: a.state.ProExpiry, Reason: ProReasonNone}
	acc := a.state.Account
	if acc != nil && acc.TrialStart != nil {
		end := acc.TrialStart.Add(trialDuration)
		st.TrialEnds = &end
	}
	switch {
	case !a.state.ProExpiry.IsZero() && now.Before(a.state.ProExpiry):
		st.Active, st.Reason = true, ProReasonFounder
	case acc != nil:
		if !acc.LoggedIn {
			break
		}
		if st.TrialEnds != nil && now.Before(*st.TrialEnds) {
			st.Active, st.Reason = true, ProReasonTrial
		} else if acc.SubscriptionStart != nil {
			st.Active, st.Reason = true, ProReasonSubscription
		}
	case a.state.Settings.IsPro:
		st.Active, st.Reason = true, ProReasonLegacy
	}
	return st
}

func (a *App) ProActive() bool { return a.ProStatus().Active }

// CheckProExpiry reports true exactly once after the founder year ends.
func (a *App) CheckProExpiry(ctx context.Context) bool {
	if a.state.ProExpiry.IsZero() || a.state.ProExpiryNotified {
		return false
	}
	if a.clock.Now().Before(a.state.ProExpiry) {
		return false
	}
	a.state.ProExpiryNotified = true
	a.save(ctx)
	return true
}
