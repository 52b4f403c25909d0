package request

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrBackingOff is returned when a host is cooling down past the caller's
// deadline. The voice chain treats it like any other provider failure and
// moves on instead of sleeping through its budget.
var ErrBackingOff = errors.New("provider is backing off")

// ProviderBackoff spaces out requests to a host that recently throttled or
// failed. It delays the next attempt; it never repeats one.
type ProviderBackoff struct {
	mu        sync.Mutex
	hosts     map[string]*cooldown
	baseDelay time.Duration
	maxDelay  time.Duration
	now       func() time.Time
}

type cooldown struct {
	strikes int
	until   time.Time
}

// NewProviderBackoff creates a backoff doubling from baseDelay up to maxDelay.
func NewProviderBackoff(baseDelay, maxDelay time.Duration) *ProviderBackoff {
	return &ProviderBackoff{
		hosts:     make(map[string]*cooldown),
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
		now:       time.Now,
	}
}

// Wait blocks until provider may be called. If ctx has a deadline before
// that, it returns ErrBackingOff at once.
func (b *ProviderBackoff) Wait(ctx context.Context, provider string) error {
	d := b.Remaining(provider)
	if d <= 0 {
		return nil
	}
	if dl, ok := ctx.Deadline(); ok && b.now().Add(d).After(dl) {
		return ErrBackingOff
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Remaining returns how long provider is still cooling down.
func (b *ProviderBackoff) Remaining(provider string) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.hosts[provider]
	if !ok {
		return 0
	}
	return max(c.until.Sub(b.now()), 0)
}

// RecordFailure adds a strike. hint, typically from Retry-After, wins when
// it is longer than the computed delay; it is still capped at maxDelay.
func (b *ProviderBackoff) RecordFailure(provider string, hint time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.hosts[provider]
	if !ok {
		c = &cooldown{}
		b.hosts[provider] = c
	}
	c.strikes++
	c.until = b.now().Add(min(max(b.delay(c.strikes), hint), b.maxDelay))
}

// RecordSuccess removes one strike. The cooldown ends with the last one.
func (b *ProviderBackoff) RecordSuccess(provider string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.hosts[provider]
	if !ok {
		return
	}
	if c.strikes > 0 {
		c.strikes--
	}
	if c.strikes == 0 {
		delete(b.hosts, provider)
	}
}

// Strikes returns the current strike count of provider.
func (b *ProviderBackoff) Strikes(provider string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.hosts[provider]; ok {
		return c.strikes
	}
	return 0
}

// delay is baseDelay * 2^(strikes-1) plus up to 10% jitter, capped.
func (b *ProviderBackoff) delay(strikes int) time.Duration {
	d := b.baseDelay
	for i := 1; i < strikes && d < b.maxDelay; i++ {
		d *= 2
	}
	d = min(d, b.maxDelay)
	return d + time.Duration(rand.Float64()*0.1*float64(d))
}
