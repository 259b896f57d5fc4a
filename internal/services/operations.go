package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/observability/metrics"
	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// run executes one state mutation under the lock, then emits its event.
func (s *Services) run(ctx context.Context, operation string, fn func() (*types.Event, error)) (*types.Event, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evt, err := fn()
	metrics.RecordOperation(operation, err)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("operation", operation).Msg("operation rejected")
		return nil, types.AsError(err)
	}
	log.Ctx(ctx).Debug().
		Str("operation", operation).
		Str("account", evt.Account.String()).
		Str("pool", evt.Pool.String()).
		Msg("operation applied")

	s.emit(ctx, nil, []*types.Event{evt})
	s.recordSnapshot()
	return evt, nil
}

func (s *Services) onPool(ctx context.Context, id types.PoolID, operation string, fn func(e *pool.Engine) (*types.Event, error)) (*types.Event, *types.Error) {
	e, apiErr := s.engine(id)
	if apiErr != nil {
		return nil, apiErr
	}
	return s.run(ctx, operation, func() (*types.Event, error) { return fn(e) })
}

func (s *Services) Deposit(ctx context.Context, id types.PoolID, caller types.AccountID, amount types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "deposit", func(e *pool.Engine) (*types.Event, error) {
		return e.Deposit(ctx, s.st, caller, amount)
	})
}

func (s *Services) Withdraw(ctx context.Context, id types.PoolID, caller types.AccountID, amount types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "withdraw", func(e *pool.Engine) (*types.Event, error) {
		return e.Withdraw(ctx, s.st, caller, amount)
	})
}

func (s *Services) Bond(ctx context.Context, id types.PoolID, caller types.AccountID, amount types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "bond", func(e *pool.Engine) (*types.Event, error) {
		return e.Bond(ctx, s.st, caller, amount)
	})
}

func (s *Services) Unbond(ctx context.Context, id types.PoolID, caller types.AccountID, shares types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "unbond", func(e *pool.Engine) (*types.Event, error) {
		return e.Unbond(ctx, s.st, caller, shares)
	})
}

func (s *Services) UnbondUnderlying(ctx context.Context, id types.PoolID, caller types.AccountID, amount types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "unbond_underlying", func(e *pool.Engine) (*types.Event, error) {
		return e.UnbondUnderlying(ctx, s.st, caller, amount)
	})
}

// Claim pays out claimable rewards of asset.
func (s *Services) Claim(ctx context.Context, id types.PoolID, caller types.AccountID, asset types.AssetID, amount types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "claim", func(e *pool.Engine) (*types.Event, error) {
		i, ok := e.Config().RewardIndex(asset)
		if !ok {
			return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest,
				fmt.Sprintf("pool %s does not reward %s", id, asset))
		}
		return e.Claim(ctx, s.st, caller, i, amount)
	})
}

func (s *Services) Provide(ctx context.Context, id types.PoolID, caller types.AccountID, value types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "provide", func(e *pool.Engine) (*types.Event, error) {
		return e.Provide(ctx, s.st, caller, value)
	})
}

func (s *Services) ProvideOneSided(ctx context.Context, id types.PoolID, caller types.AccountID, value types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "provide_one_sided", func(e *pool.Engine) (*types.Event, error) {
		return e.ProvideOneSided(ctx, s.st, caller, value)
	})
}

func (s *Services) PokeRewards(ctx context.Context, id types.PoolID, caller types.AccountID) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "poke_rewards", func(e *pool.Engine) (*types.Event, error) {
		return e.PokeRewards(ctx, s.st, caller)
	})
}

func (s *Services) EmergencyPause(ctx context.Context, id types.PoolID, caller types.AccountID) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "emergency_pause", func(e *pool.Engine) (*types.Event, error) {
		return e.EmergencyPause(ctx, s.st, caller)
	})
}

func (s *Services) EmergencyWithdraw(ctx context.Context, id types.PoolID, caller types.AccountID, asset types.AssetID, amount types.Amount) (*types.Event, *types.Error) {
	return s.onPool(ctx, id, "emergency_withdraw", func(e *pool.Engine) (*types.Event, error) {
		return e.EmergencyWithdraw(ctx, s.st, caller, asset, amount)
	})
}

func (s *Services) Vote(ctx context.Context, caller types.AccountID, candidate string, choice types.VoteChoice) (*types.Event, *types.Error) {
	return s.run(ctx, "vote", func() (*types.Event, error) {
		return s.governor.Vote(ctx, s.st, caller, candidate, choice)
	})
}

func (s *Services) Commit(ctx context.Context, caller types.AccountID, candidate string) (*types.Event, *types.Error) {
	return s.run(ctx, "commit", func() (*types.Event, error) {
		return s.governor.Commit(ctx, s.protocol(), caller, candidate)
	})
}

func (s *Services) EmergencyCommit(ctx context.Context, caller types.AccountID, candidate string) (*types.Event, *types.Error) {
	return s.run(ctx, "emergency_commit", func() (*types.Event, error) {
		return s.governor.EmergencyCommit(ctx, s.protocol(), caller, candidate, s.clock.EpochTime())
	})
}

// TreasuryDisburse moves Dollar out of the treasury. Only the DAO may call it.
func (s *Services) TreasuryDisburse(ctx context.Context, caller, to types.AccountID, amount types.Amount) (*types.Event, *types.Error) {
	return s.run(ctx, "treasury_disburse", func() (*types.Event, error) {
		if caller != s.dao {
			return nil, types.ErrNotDao
		}
		dollar, err := s.clients.Token(types.AssetDollar)
		if err != nil {
			return nil, err
		}
		if err := dollar.Transfer(ctx, s.treasury, to, amount); err != nil {
			return nil, err
		}
		return types.NewEvent(types.EventTreasuryDisburse, s.st.Epoch).
			WithAccount(caller).
			WithString("to", to.String()).
			With("amount", amount), nil
	})
}

// Approve lets spender move owner's asset. Pools pull deposits through their
// own address, so this is how an account prepares a deposit.
func (s *Services) Approve(ctx context.Context, asset types.AssetID, owner, spender types.AccountID, amount types.Amount) *types.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tk, err := s.clients.Token(asset)
	if err == nil {
		err = tk.Approve(ctx, owner, spender, amount)
	}
	metrics.RecordOperation("approve", err)
	if err != nil {
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	return nil
}
