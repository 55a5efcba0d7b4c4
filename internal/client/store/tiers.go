package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrUnknownTier = errors.New("unknown persistence tier")

// Tiers couples the durable and ephemeral stores and enforces that a key
// lives in at most one of them.
type Tiers struct {
	durable   Store
	ephemeral Store
}

func NewTiers(durable, ephemeral Store) *Tiers {
	return &Tiers{durable: durable, ephemeral: ephemeral}
}

func (t *Tiers) store(tier Tier) (Store, error) {
	switch tier {
	case TierDurable:
		return t.durable, nil
	case TierEphemeral:
		return t.ephemeral, nil
	default:
		return nil, ErrUnknownTier
	}
}

func (t *Tiers) other(tier Tier) Store {
	if tier == TierDurable {
		return t.ephemeral
	}
	return t.durable
}

// Save writes value under key in tier after removing key from the other
// tier.
func (t *Tiers) Save(ctx context.Context, tier Tier, key string, value []byte) error {
	dst, err := t.store(tier)
	if err != nil {
		return err
	}
	if err := t.other(tier).Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %s tier: %w", otherTier(tier), err)
	}
	if err := dst.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write %s tier: %w", tier, err)
	}
	return nil
}

// Load finds key in either tier. It returns TierNone and a nil value when
// neither holds it. If both do, the durable copy wins and the ephemeral one
// is dropped.
func (t *Tiers) Load(ctx context.Context, key string) ([]byte, Tier, error) {
	v, err := t.durable.Get(ctx, key)
	if err != nil {
		return nil, TierNone, fmt.Errorf("read durable tier: %w", err)
	}
	if v != nil {
		if err := t.ephemeral.Delete(ctx, key); err != nil {
			return nil, TierNone, fmt.Errorf("clear ephemeral tier: %w", err)
		}
		return v, TierDurable, nil
	}

	v, err = t.ephemeral.Get(ctx, key)
	if err != nil {
		return nil, TierNone, fmt.Errorf("read ephemeral tier: %w", err)
	}
	if v != nil {
		return v, TierEphemeral, nil
	}
	return nil, TierNone, nil
}

// Clear removes key from both tiers. Both deletes are attempted even if the
// first fails.
func (t *Tiers) Clear(ctx context.Context, key string) error {
	var errs []error
	if err := t.durable.Delete(ctx, key); err != nil {
		errs = append(errs, fmt.Errorf("clear durable tier: %w", err))
	}
	if err := t.ephemeral.Delete(ctx, key); err != nil {
		errs = append(errs, fmt.Errorf("clear ephemeral tier: %w", err))
	}
	return errors.Join(errs...)
}

func otherTier(tier Tier) Tier {
	if tier == TierDurable {
		return TierEphemeral
	}
	return TierDurable
}
