package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"merchant-dashboard/internal/events"
	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/routes"
	"merchant-dashboard/internal/token"
)

const (
	authenticationKey = "authentication"
	userProfileKey    = "user_profile"
)

// Resetter clears a loader's session register on logout.
type Resetter interface {
	Reset()
}

// Bootstrap decides where the app starts: the stored authentication shape
// plus the profile fetch outcome map onto one of five destinations.
type Bootstrap struct {
	profiles  ProfileAPI
	store     kvstore.Store
	events    *events.Manager
	log       *zap.SugaredLogger
	resetters []Resetter
}

func NewBootstrap(profiles ProfileAPI, store kvstore.Store, ev *events.Manager, log *zap.SugaredLogger, resetters ...Resetter) *Bootstrap {
	return &Bootstrap{
		profiles:  profiles,
		store:     store,
		events:    ev,
		log:       log,
		resetters: resetters,
	}
}

// SignIn stores the identity carried by a fresh access token, then routes the
// session like Start.
func (b *Bootstrap) SignIn(ctx context.Context, rawToken string) routes.Redirection {
	auth, err := token.AuthenticationFrom(rawToken)
	if err != nil {
		b.log.Warnw("rejecting malformed access token", "error", err)
		return routes.To(routes.Login)
	}
	if err := kvstore.SetJSON(ctx, b.store, authenticationKey, auth); err != nil {
		b.log.Errorw("failed to store authentication", "error", err)
	}
	return b.Start(ctx)
}

// Start routes the session:
//
//	no stored authentication            -> login
//	token present, never provisioned    -> refresh-session
//	profile fetch failed                -> refresh-session (transient, retry)
//	profile without a region            -> set-config
//	otherwise                           -> dashboard, profile persisted
func (b *Bootstrap) Start(ctx context.Context) routes.Redirection {
	var auth models.Authentication
	if err := kvstore.GetJSON(ctx, b.store, authenticationKey, &auth); err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			b.log.Warnw("failed to read stored authentication", "error", err)
		}
		return routes.To(routes.Login)
	}
	if auth.Token == "" {
		return routes.To(routes.Login)
	}

	if !auth.Provisioned() {
		// Signed up but the account was never set up on the backend.
		return routes.To(routes.RefreshSession)
	}

	profile, err := b.profiles.GetProfile(ctx)
	if err != nil {
		// Intentional soft-fail: a broken profile fetch is treated as
		// transient and retried on the next session refresh.
		b.log.Infow("profile fetch failed, refreshing session", "error", err)
		return routes.To(routes.RefreshSession)
	}

	if profile.Region == "" {
		return routes.To(routes.SetConfig)
	}

	if err := kvstore.SetJSON(ctx, b.store, userProfileKey, profile); err != nil {
		b.log.Warnw("failed to persist profile", "error", err)
	}
	return routes.To(routes.Dashboard)
}

// Logout wipes the persisted session and every loader's fetched-key register.
func (b *Bootstrap) Logout(ctx context.Context) routes.Redirection {
	if err := b.store.Clear(ctx); err != nil {
		b.log.Errorw("failed to clear session store", "error", err)
	}
	for _, r := range b.resetters {
		r.Reset()
	}
	b.events.PublishCacheCleared(ctx)
	return routes.To(routes.Login)
}
