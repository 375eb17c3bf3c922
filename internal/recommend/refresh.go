package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type RefreshState int

const (
	Idle RefreshState = iota
	Refreshing
	RateLimited
)

func (s RefreshState) String() string {
	switch s {
	case Refreshing:
		return "refreshing"
	case RateLimited:
		return "rate-limited"
	}
	return "idle"
}

// Refresher performs the network call that regenerates recommendations. A
// quota rejection is reported through the RateLimit, not the error.
type Refresher interface {
	Refresh(ctx context.Context) ([]Recommendation, RateLimit, error)
}

type RefresherFunc func(ctx context.Context) ([]Recommendation, RateLimit, error)

func (f RefresherFunc) Refresh(ctx context.Context) ([]Recommendation, RateLimit, error) {
	return f(ctx)
}

type RefreshSnapshot struct {
	State           RefreshState
	ResetTime       time.Time
	Remaining       time.Duration
	Recommendations []Recommendation
}

func (s RefreshSnapshot) Countdown() string {
	return FormatRemaining(s.Remaining)
}

type RefreshOption func(*RefreshController)

func WithClock(now func() time.Time) RefreshOption {
	return func(rc *RefreshController) {
		rc.now = now
	}
}

func WithTickInterval(d time.Duration) RefreshOption {
	return func(rc *RefreshController) {
		rc.interval = d
	}
}

func WithRecommendations(list []Recommendation) RefreshOption {
	return func(rc *RefreshController) {
		rc.recommendations = list
	}
}

// RefreshController gates manual refreshes. Only an idle controller
// refreshes; while a refresh is in flight or the quota is exhausted further
// calls are ignored. A rate-limited controller returns to idle once the
// reset time has passed.
type RefreshController struct {
	mu              sync.Mutex
	refresher       Refresher
	now             func() time.Time
	interval        time.Duration
	state           RefreshState
	resetTime       time.Time
	recommendations []Recommendation
}

func NewRefreshController(refresher Refresher, opts ...RefreshOption) *RefreshController {
	rc := &RefreshController{
		refresher: refresher,
		now:       time.Now,
		interval:  time.Second,
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// expire must be called with mu held.
func (rc *RefreshController) expire(now time.Time) {
	if rc.state == RateLimited && !now.Before(rc.resetTime) {
		rc.state = Idle
		rc.resetTime = time.Time{}
	}
}

// snapshot must be called with mu held.
func (rc *RefreshController) snapshot(now time.Time) RefreshSnapshot {
	snap := RefreshSnapshot{
		State:           rc.state,
		Recommendations: rc.recommendations,
	}
	if rc.state == RateLimited {
		snap.ResetTime = rc.resetTime
		snap.Remaining = Remaining(rc.resetTime, now)
	}
	return snap
}

// Refresh regenerates the recommendations when the controller is idle and
// reports whether a refresh was started.
func (rc *RefreshController) Refresh(ctx context.Context) (bool, error) {
	rc.mu.Lock()
	rc.expire(rc.now())
	if rc.state != Idle {
		rc.mu.Unlock()
		return false, nil
	}
	rc.state = Refreshing
	rc.mu.Unlock()

	list, limit, err := rc.refresher.Refresh(ctx)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	switch {
	case err != nil:
		rc.state = Idle
		return true, fmt.Errorf("refreshing recommendations: %w", err)
	case limit.IsRateLimited:
		rc.state = RateLimited
		rc.resetTime = limit.ResetAt()
		rc.expire(rc.now())
	default:
		rc.state = Idle
		rc.recommendations = list
	}
	return true, nil
}

func (rc *RefreshController) Tick() RefreshSnapshot {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	now := rc.now()
	rc.expire(now)
	return rc.snapshot(now)
}

func (rc *RefreshController) Snapshot() RefreshSnapshot {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.snapshot(rc.now())
}

func (rc *RefreshController) Recommendations() []Recommendation {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.recommendations
}

// Run ticks while the controller is rate-limited, handing every snapshot
// to onTick, and returns once it is idle again or ctx is done.
func (rc *RefreshController) Run(ctx context.Context, onTick func(RefreshSnapshot)) {
	snap := rc.Tick()
	onTick(snap)
	if snap.State != RateLimited {
		return
	}
	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := rc.Tick()
			onTick(snap)
			if snap.State != RateLimited {
				return
			}
		}
	}
}

func Remaining(resetTime, now time.Time) time.Duration {
	if !now.Before(resetTime) {
		return 0
	}
	return resetTime.Sub(now)
}

// FormatRemaining renders a countdown such as "1m 5s". Seconds are
// rounded up so the text only reads "0s" once the time is up.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	seconds := int64((d + time.Second - 1) / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
