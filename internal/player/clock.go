package player

import "time"

// RefillPeriod is how long a missing heart takes to come back.
const RefillPeriod = 10 * time.Minute

// TickInterval is how often the host should call Tick. Only the
// responsiveness of the countdown depends on it.
const TickInterval = time.Second

// Clock regenerates hearts as wall time advances, independent of any
// screen. It owns no loop of its own: the host drives Tick at
// TickInterval, and every tick is expressed as a Ledger transaction, so
// user actions and refills serialize cleanly.
type Clock struct {
	ledger *Ledger
	now    func() time.Time

	// OnRefill, when set, is called after a tick restores a heart.
	OnRefill func(State)
}

// NewClock creates a heart clock for the given ledger.
func NewClock(ledger *Ledger) *Clock {
	return &Clock{
		ledger: ledger,
		now:    time.Now,
	}
}

// Tick advances the regeneration state machine once. Safe to call from
// any goroutine and idempotent under repeated calls within one period.
func (c *Clock) Tick() bool {
	restored := c.ledger.ApplyRefillTick(c.now())
	if restored && c.OnRefill != nil {
		c.OnRefill(c.ledger.State())
	}
	return restored
}

// TimeToNextHeart returns the remaining wait, or zero when hearts are
// full or no timer is armed yet.
func TimeToNextHeart(s State, now time.Time) time.Duration {
	if s.Hearts >= MaxHearts || s.NextHeartRefillAt == nil {
		return 0
	}
	d := s.NextHeartRefillAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
