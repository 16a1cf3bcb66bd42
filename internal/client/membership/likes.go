package membership

import (
	"context"
	"errors"
	"sync"

	"github.com/Amelia-Slapek/clea-client/internal/client/api"
)

// LikeCounter is the displayed like count for one article. The toggle
// bumps it optimistically before the network call resolves and rolls the
// bump back on failure, so the display never drifts from confirmed state.
type LikeCounter struct {
	mu sync.Mutex
	n  int
}

func NewLikeCounter(n int) *LikeCounter {
	return &LikeCounter{n: n}
}

func (c *LikeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func (c *LikeCounter) add(delta int) {
	c.mu.Lock()
	c.n += delta
	c.mu.Unlock()
}

func (c *LikeCounter) set(n int) {
	c.mu.Lock()
	c.n = n
	c.mu.Unlock()
}

// ToggleLike flips the current user's like on an article. Unlike the
// membership sets, the backend tracks likes as an aggregate count only,
// so the liked-or-not state lives client-side per user and the server's
// returned aggregate overwrites the optimistic counter on success.
func (t *Toggler) ToggleLike(ctx context.Context, articleID string, counter *LikeCounter) (bool, error) {
	user := t.session.CurrentUser()
	token := t.session.Token()
	if user == nil || token == "" {
		return false, ErrLoginRequired
	}

	key := "likes:" + articleID
	if !t.acquire(key) {
		return false, ErrToggleInFlight
	}
	defer t.release(key)

	liked := t.isLiked(user.ID, articleID)

	// Optimistic bump so the control reacts immediately.
	delta := 1
	if liked {
		delta = -1
	}
	counter.add(delta)

	var (
		resp *api.LikeResponse
		err  error
	)
	if liked {
		resp, err = t.api.UnlikeArticle(ctx, token, articleID)
	} else {
		resp, err = t.api.LikeArticle(ctx, token, articleID)
	}
	if err != nil {
		counter.add(-delta)
		if errors.Is(err, api.ErrUnauthorized) {
			t.session.Logout(ctx)
			return liked, ErrLoginRequired
		}
		t.log.Warn(ctx, "like toggle failed", "article", articleID, "error", err)
		return liked, err
	}

	counter.set(resp.Likes)
	t.setLiked(user.ID, articleID, !liked)
	return !liked, nil
}

// IsLiked reports whether the current user has liked the article in this
// client session.
func (t *Toggler) IsLiked(articleID string) bool {
	user := t.session.CurrentUser()
	if user == nil {
		return false
	}
	return t.isLiked(user.ID, articleID)
}

func (t *Toggler) isLiked(userID, articleID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liked[userID][articleID]
}

func (t *Toggler) setLiked(userID, articleID string, liked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.liked[userID]
	if !ok {
		set = make(map[string]bool)
		t.liked[userID] = set
	}
	if liked {
		set[articleID] = true
	} else {
		delete(set, articleID)
	}
}
