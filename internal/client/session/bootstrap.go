package session

import (
	"context"
	"errors"
	"fmt"
)

// Bootstrap restores a stored session at startup. A stored, authenticated
// record is renewed and its profile re-read; if either step fails the session
// is ended and the redirect fires. With nothing stored it returns nil.
func (c *Coordinator) Bootstrap(ctx context.Context) error {
	raw, tier, err := c.tiers.Load(ctx, c.key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	cred, err := unmarshalCredential(raw)
	if err != nil {
		c.log.Warn(ctx, "discarding unreadable stored session", "error", err)
		return c.tiers.Clear(ctx, c.key)
	}
	if !cred.Authenticated {
		return nil
	}
	cred.Tier = tier

	c.beginLoading()
	defer c.endLoading()

	c.mu.Lock()
	c.cred = cred
	c.epoch++
	epoch := c.epoch
	c.mu.Unlock()

	c.log.Debug(ctx, "restoring session", "user", cred.Username, "tier", tier)

	token, err := c.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, errSessionEnded) {
			return err
		}
		c.terminate(ctx, epoch, cred.AccessToken, err)
		return err
	}

	profile, err := c.remote.AccountInfo(ctx, token)
	if err != nil {
		err = fmt.Errorf("failed to load account info: %w", err)
		c.terminate(ctx, epoch, token, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		return nil
	}
	c.cred.merge(profile)
	c.cred.Authenticated = true
	if err := c.persistLocked(ctx); err != nil {
		c.log.Error(ctx, "failed to persist restored session", "error", err)
	}

	c.log.Info(ctx, "session restored", "user", c.cred.Username, "tier", c.cred.Tier)
	return nil
}
