package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/epoch"
	"github.com/pegkeeper/dollar-protocol-service/internal/observability/metrics"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Advance moves the protocol exactly one epoch forward. It is permissionless
// and fails with NOT_READY until the wall clock is ahead of the state.
func (s *Services) Advance(ctx context.Context, caller types.AccountID) ([]*types.Event, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, snapshot, err := s.advance(ctx, caller)
	metrics.RecordOperation("advance", err)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint64("epoch", s.st.Epoch).Msg("advance rejected")
		return nil, types.AsError(err)
	}
	log.Ctx(ctx).Info().
		Uint64("epoch", s.st.Epoch).
		Str("caller", caller.String()).
		Str("outcome", events[1].Type.String()).
		Msg("epoch advanced")

	s.emit(ctx, snapshot, events)
	s.recordSnapshot()
	return events, nil
}

func (s *Services) advance(ctx context.Context, caller types.AccountID) ([]*types.Event, *model.EpochSnapshotDocument, error) {
	if err := s.clock.Ready(s.st); err != nil {
		return nil, nil, err
	}
	impl, ok := s.catalog.Get(s.st.ActiveVersion)
	if !ok {
		return nil, nil, types.ErrUnknownImplementation
	}

	price, valid, err := s.clients.CapturePrice(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to capture price, treating it as invalid")
		price, valid = types.DecimalZero(), false
	}

	snap := epoch.Increment(
		s.st,
		s.pools[types.PoolDAO].TotalBonded(s.st),
		s.clients.TotalSupply(types.AssetDollar),
	)
	step, err := impl.Step(ctx, s.protocol(), price, valid)
	if err != nil {
		epoch.Revert(s.st)
		return nil, nil, err
	}
	if valid {
		s.st.Price = price
		s.st.PriceValid = true
	}

	advanced := types.NewEvent(types.EventAdvance, s.st.Epoch).
		WithAccount(caller).
		With("price", price).
		WithString("valid", strconv.FormatBool(valid)).
		WithString("version", impl.Version())
	events := []*types.Event{advanced, step}
	events = append(events, s.governor.ResolveDue(s.st)...)

	return events, s.snapshotDocument(snap), nil
}

func (s *Services) snapshotDocument(snap state.EpochSnapshot) *model.EpochSnapshotDocument {
	doc := &model.EpochSnapshotDocument{
		Epoch:         snap.Epoch,
		TotalBonded:   snap.TotalBonded.String(),
		TotalSupply:   snap.TotalSupply.String(),
		Debt:          s.st.Debt.String(),
		Redeemable:    s.st.Redeemable.String(),
		Price:         s.st.Price.String(),
		PriceValid:    s.st.PriceValid,
		ActiveVersion: s.st.ActiveVersion,
		PoolsBonded:   map[string]string{},
		Timestamp:     s.clock.Now().Unix(),
	}
	for id, e := range s.pools {
		doc.PoolsBonded[id.String()] = e.TotalBonded(s.st).String()
	}
	return doc
}
