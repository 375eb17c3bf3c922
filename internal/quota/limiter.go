// Package quota counts manual recommendation refreshes per account.
package quota

import (
	"context"
	"fmt"
	"time"

	"fridgepick.pl/api/internal/cache"
)

type window struct {
	Start int64 `json:"start"`
	Count int   `json:"count"`
}

type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed window counter kept in the cache store. Each account
// may refresh Limit times per Window; the window opens on the first refresh.
type Limiter struct {
	Store  cache.Store
	Limit  int
	Window time.Duration
	now    func() time.Time
}

func NewLimiter(store cache.Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		Store:  store,
		Limit:  limit,
		Window: window,
		now:    time.Now,
	}
}

func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func key(account string) string {
	return fmt.Sprintf("quota:refresh:%s", account)
}

func (w window) resetAt(length time.Duration) time.Time {
	return time.UnixMilli(w.Start).UTC().Add(length)
}

func (l *Limiter) load(ctx context.Context, account string, now time.Time) (window, error) {
	current, ok, err := cache.GetJSON[window](ctx, l.Store, key(account))
	if err != nil {
		return window{}, err
	}
	if !ok || !now.Before(current.resetAt(l.Window)) {
		return window{Start: now.UnixMilli()}, nil
	}
	return current, nil
}

// Allow consumes one refresh if the window still has room.
func (l *Limiter) Allow(ctx context.Context, account string) (Decision, error) {
	now := l.now()
	current, err := l.load(ctx, account, now)
	if err != nil {
		return Decision{}, fmt.Errorf("loading quota: %w", err)
	}
	resetAt := current.resetAt(l.Window)
	if current.Count >= l.Limit {
		return Decision{Allowed: false, ResetAt: resetAt}, nil
	}
	current.Count++
	if err := cache.SetJSON(ctx, l.Store, key(account), current, resetAt.Sub(now)); err != nil {
		return Decision{}, fmt.Errorf("saving quota: %w", err)
	}
	return Decision{
		Allowed:   true,
		Remaining: l.Limit - current.Count,
		ResetAt:   resetAt,
	}, nil
}

// Peek reports the state of the window without consuming it.
func (l *Limiter) Peek(ctx context.Context, account string) (Decision, error) {
	now := l.now()
	current, err := l.load(ctx, account, now)
	if err != nil {
		return Decision{}, fmt.Errorf("loading quota: %w", err)
	}
	return Decision{
		Allowed:   current.Count < l.Limit,
		Remaining: max(l.Limit-current.Count, 0),
		ResetAt:   current.resetAt(l.Window),
	}, nil
}
