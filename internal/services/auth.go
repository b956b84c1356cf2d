// Package services holds the application services: authentication,
// sessions, and the journal service with its ownership policy.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/models"
	"github.com/moodtrail/moodtrail-backend/internal/storage"
	"github.com/moodtrail/moodtrail-backend/internal/validation"
	"github.com/moodtrail/moodtrail-backend/pkg/utils"
)

// Auth verifies credentials and manages the session lifecycle.
type Auth struct {
	store    storage.Storage
	sessions Sessions
}

func NewAuth(store storage.Storage, sessions Sessions) *Auth {
	return &Auth{store: store, sessions: sessions}
}

// Register creates a user and establishes a session for it. Duplicate
// usernames surface as errs.ErrConflict; the race between two
// concurrent registrations is closed by the storage layer's uniqueness
// constraint, not by the lookup here.
func (a *Auth) Register(ctx context.Context, username, password, confirmPassword string) (*models.User, string, error) {
	if verrs := validation.ValidateRegistration(username, password, confirmPassword); verrs != nil {
		return nil, "", verrs
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := a.store.CreateUser(ctx, username, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and establishes a session. Unknown
// username and wrong password return the identical error so the
// response never reveals which check failed.
func (a *Auth) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.VerifyPassword(password, user.Password) {
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

// Logout destroys the session. Destroying a missing session is fine.
func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.sessions.Destroy(ctx, token)
}

// CurrentUser resolves a session token to the user it belongs to.
func (a *Auth) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, ok, err := a.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrUnauthenticated
	}

	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Session points at a user that no longer exists.
			return nil, errs.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
