// Package membership implements the shared toggle pattern behind the
// favorite, saved-article, and allergen controls, plus the like button:
// flip membership of one entity in one of the user's sets, call the
// backend, and let the server's response overwrite the local state.
package membership

import (
	"context"
	"errors"
	"sync"

	"github.com/Amelia-Slapek/clea-client/internal/client/api"
	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/client/session"
	"github.com/Amelia-Slapek/clea-client/internal/logging"
)

// Kind selects which membership set a toggle operates on.
type Kind string

const (
	Favorites     Kind = "favorites"
	SavedArticles Kind = "saved-articles"
	Allergies     Kind = "allergies"
)

var (
	// ErrLoginRequired means the caller must route the user to the login
	// screen; no network call was made (or the token was just rejected).
	ErrLoginRequired = errors.New("login required")

	// ErrToggleInFlight means a toggle for the same entity has not
	// resolved yet. Two opposite in-flight toggles could leave local and
	// remote state permanently disagreeing, so the second one is refused.
	ErrToggleInFlight = errors.New("toggle already in flight")
)

// Toggler runs membership toggles against the backend. One Toggler serves
// all relationship kinds; in-flight serialization is per (kind, entity).
type Toggler struct {
	session session.Provider
	api     api.Client
	log     logging.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
	liked    map[string]map[string]bool // userID -> articleID -> liked
}

func NewToggler(sess session.Provider, apiClient api.Client, log logging.Logger) *Toggler {
	return &Toggler{
		session:  sess,
		api:      apiClient,
		log:      log.With("component", "membership"),
		inFlight: make(map[string]struct{}),
		liked:    make(map[string]map[string]bool),
	}
}

func (t *Toggler) acquire(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.inFlight[key]; busy {
		return false
	}
	t.inFlight[key] = struct{}{}
	return true
}

func (t *Toggler) release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, key)
}

// Toggle adds entityID to the given set if absent, removes it if present,
// and applies the server's authoritative set through the session. It
// returns whether the entity is a member afterwards.
func (t *Toggler) Toggle(ctx context.Context, kind Kind, entityID string) (bool, error) {
	user := t.session.CurrentUser()
	token := t.session.Token()
	if user == nil || token == "" {
		return false, ErrLoginRequired
	}

	key := string(kind) + ":" + entityID
	if !t.acquire(key) {
		return false, ErrToggleInFlight
	}
	defer t.release(key)

	isMember := t.currentMembership(user, kind, entityID)

	resp, err := t.call(ctx, kind, token, entityID, !isMember)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			t.log.Warn(ctx, "token rejected during toggle, logging out", "kind", kind)
			t.session.Logout(ctx)
			return isMember, ErrLoginRequired
		}
		t.log.Warn(ctx, "toggle failed", "kind", kind, "entity", entityID, "error", err)
		return isMember, err
	}

	updated := user.Clone()
	switch kind {
	case Favorites:
		updated.FavoriteProducts = resp.FavoriteProducts
	case SavedArticles:
		updated.SavedArticles = resp.SavedArticles
	case Allergies:
		updated.Allergies = resp.Allergies
	}
	t.session.UpdateUser(ctx, updated)

	return t.currentMembership(updated, kind, entityID), nil
}

func (t *Toggler) currentMembership(user *models.User, kind Kind, entityID string) bool {
	switch kind {
	case Favorites:
		return user.HasFavorite(entityID)
	case SavedArticles:
		return user.HasSavedArticle(entityID)
	case Allergies:
		return user.HasAllergy(entityID)
	}
	return false
}

func (t *Toggler) call(ctx context.Context, kind Kind, token, entityID string, add bool) (*api.MembershipResponse, error) {
	switch kind {
	case Favorites:
		if add {
			return t.api.AddFavorite(ctx, token, entityID)
		}
		return t.api.RemoveFavorite(ctx, token, entityID)
	case SavedArticles:
		if add {
			return t.api.AddSavedArticle(ctx, token, entityID)
		}
		return t.api.RemoveSavedArticle(ctx, token, entityID)
	case Allergies:
		if add {
			return t.api.AddAllergy(ctx, token, entityID)
		}
		return t.api.RemoveAllergy(ctx, token, entityID)
	}
	return nil, errors.New("unknown membership kind: " + string(kind))
}
