package session

import (
	"context"
	"errors"
	"time"
)

func (c *Coordinator) cancelTimerLocked() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// rescheduleLocked replaces the proactive renewal timer for the current
// credential.
func (c *Coordinator) rescheduleLocked(ctx context.Context) {
	c.cancelTimerLocked()

	if c.closed || !c.cred.Authenticated {
		return
	}

	exp, err := DecodeExpiry(c.cred.AccessToken)
	if err != nil {
		c.log.Debug(ctx, "no proactive renewal", "reason", err)
		return
	}

	now := c.now()
	if !exp.After(now) {
		return
	}

	delay := exp.Sub(now) - c.buffer
	if delay < 0 {
		delay = 0
	}

	gen := c.timerGen
	c.timer = c.afterFunc(delay, func() { c.fire(gen) })
	c.log.Debug(ctx, "renewal scheduled", "in", delay.Round(time.Second), "expires_at", exp)
}

// fire runs a proactive renewal unless the timer has been superseded.
func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.timerGen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	epoch, token := c.epoch, c.cred.AccessToken
	c.mu.Unlock()

	ctx := context.Background()
	if _, err := c.Refresh(ctx); err != nil && !errors.Is(err, errSessionEnded) {
		c.terminate(ctx, epoch, token, err)
	}
}
