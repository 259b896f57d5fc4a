package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/observability/metrics"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

const (
	sinkDb    = "db"
	sinkQueue = "queue"
)

// stamp assigns ids and timestamps and returns the seq of the first event.
// Seqs are nanosecond based and strictly increasing across emissions.
func (s *Services) stamp(events []*types.Event) int64 {
	now := s.clock.Now()
	first := s.lastSeq + 1
	if n := now.UnixNano(); n > first {
		first = n
	}
	for _, evt := range events {
		evt.ID = uuid.NewString()
		evt.Timestamp = now.Unix()
	}
	s.lastSeq = first + int64(len(events)) - 1
	return first
}

// emit writes events to the database and the queue concurrently. The state
// change is already applied, so sink failures are logged and counted but
// never reported to the caller. Callers hold s.mu.
func (s *Services) emit(ctx context.Context, snapshot *model.EpochSnapshotDocument, events []*types.Event) {
	if len(events) == 0 {
		return
	}
	firstSeq := s.stamp(events)
	sinkCtx := context.WithoutCancel(ctx)

	group := s.sinks.NewGroupContext(sinkCtx)
	group.Submit(func() {
		s.persist(sinkCtx, snapshot, firstSeq, events)
	})
	group.Submit(func() {
		s.publish(sinkCtx, firstSeq, events)
	})
	if err := group.Wait(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("event fan-out did not complete")
	}
}

func (s *Services) persist(ctx context.Context, snapshot *model.EpochSnapshotDocument, firstSeq int64, events []*types.Event) {
	var err error
	if snapshot != nil {
		err = s.DbClient.SaveAdvance(ctx, snapshot, firstSeq, events)
	} else {
		err = s.DbClient.SaveEvents(ctx, firstSeq, events)
	}
	if err != nil {
		metrics.RecordEventSinkFailure(sinkDb)
		log.Ctx(ctx).Error().Err(err).
			Int64("seq", firstSeq).
			Int("count", len(events)).
			Msg("failed to persist events")
	}
}

// publish sends events in order. Once the queue refuses one, it and every
// later event are stored as unpublished so a replay keeps the order.
func (s *Services) publish(ctx context.Context, firstSeq int64, events []*types.Event) {
	if s.Publisher == nil {
		return
	}
	failed := false
	for i, evt := range events {
		seq := firstSeq + int64(i)
		body, err := s.Publisher.EncodeEvent(evt)
		if err != nil {
			metrics.RecordEventSinkFailure(sinkQueue)
			log.Ctx(ctx).Error().Err(err).Str("eventId", evt.ID).Msg("failed to encode event")
			continue
		}
		if !failed {
			if err = s.Publisher.SendRaw(ctx, body); err == nil {
				continue
			}
			failed = true
			metrics.RecordEventSinkFailure(sinkQueue)
			log.Ctx(ctx).Error().Err(err).Str("eventId", evt.ID).Msg("failed to publish event")
		}
		if err := s.DbClient.SaveUnpublishedEvent(ctx, evt.ID, seq, body); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("eventId", evt.ID).Msg("failed to save unpublished event")
		}
	}
}

// ReplayUnpublishedEvents republishes stored events in emission order and
// deletes each one the queue accepts. It stops at the first failure.
func (s *Services) ReplayUnpublishedEvents(ctx context.Context) (int, error) {
	if s.Publisher == nil {
		return 0, fmt.Errorf("no event publisher configured")
	}
	docs, err := s.DbClient.FindUnpublishedEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load unpublished events: %w", err)
	}
	replayed := 0
	for _, doc := range docs {
		if err := s.Publisher.SendRaw(ctx, doc.MessageBody); err != nil {
			return replayed, fmt.Errorf("failed to replay event %s: %w", doc.EventID, err)
		}
		if err := s.DbClient.DeleteUnpublishedEvent(ctx, doc.EventID); err != nil {
			return replayed, fmt.Errorf("failed to delete replayed event %s: %w", doc.EventID, err)
		}
		replayed++
	}
	log.Ctx(ctx).Info().Int("replayed", replayed).Msg("unpublished events replayed")
	return replayed, nil
}
