package session

import (
	"context"
	"fmt"
)

const flightKey = "refresh"

// Refresh renews the access token and returns it. Concurrent callers share
// one round-trip and one outcome. A failure ends the session and is returned
// wrapped in ErrSessionExpired.
//
// The round-trip is not tied to ctx: if ctx ends first Refresh returns
// ctx.Err() and the renewal completes for everyone else.
func (c *Coordinator) Refresh(ctx context.Context) (string, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(flightKey, func() (any, error) {
		return c.renew(flightCtx)
	})
	c.metrics.RefreshCalls.Inc()

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// renew is the body of a flight. The credential and its stored copy are
// updated before it returns, so every waiter sees them.
func (c *Coordinator) renew(ctx context.Context) (string, error) {
	c.inFlight.Add(1)
	c.beginLoading()
	defer c.endLoading()
	defer c.inFlight.Add(-1)

	epoch := c.currentEpoch()

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.remote.RefreshToken(rctx)
	if err == nil {
		err = validateToken(token)
	}
	if err != nil {
		c.metrics.RefreshRoundTrips.WithLabelValues("failure").Inc()
		err = fmt.Errorf("%w: %w", ErrSessionExpired, err)
		c.expire(ctx, epoch, err)
		return "", err
	}
	c.metrics.RefreshRoundTrips.WithLabelValues("success").Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch || !c.cred.Authenticated {
		c.log.Debug(ctx, "discarding renewal for ended session")
		return "", errSessionEnded
	}

	c.cred.AccessToken = token
	if err := c.persistLocked(ctx); err != nil {
		c.log.Error(ctx, "failed to persist renewed session", "error", err, "tier", c.cred.Tier)
	}
	c.rescheduleLocked(ctx)

	c.log.Debug(ctx, "session renewed", "tier", c.cred.Tier)
	return token, nil
}
