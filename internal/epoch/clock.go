package epoch

import (
	"time"

	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Clock maps wall-clock time onto epoch numbers.
type Clock struct {
	start  int64
	period int64
	now    func() time.Time
}

func NewClock(start, period int64, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{start: start, period: period, now: now}
}

// EpochTime is floor((now - start) / period), or 0 before start.
func (c *Clock) EpochTime() uint64 {
	now := c.now().Unix()
	if now < c.start || c.period <= 0 {
		return 0
	}
	return uint64((now - c.start) / c.period)
}

// StartOf returns the wall-clock start of epoch e.
func (c *Clock) StartOf(e uint64) time.Time {
	return time.Unix(c.start+int64(e)*c.period, 0).UTC()
}

func (c *Clock) Now() time.Time {
	return c.now()
}

// Ready fails with ErrNotReady unless wall-clock time is ahead of the state.
func (c *Clock) Ready(st *state.ProtocolState) error {
	if c.EpochTime() <= st.Epoch {
		return types.ErrNotReady
	}
	return nil
}

// Increment moves the state forward exactly one epoch and records the
// snapshot used for vote quorums.
func Increment(st *state.ProtocolState, totalBonded, totalSupply types.Amount) state.EpochSnapshot {
	st.Epoch++
	snap := state.EpochSnapshot{
		Epoch:       st.Epoch,
		TotalBonded: totalBonded,
		TotalSupply: totalSupply,
	}
	st.Snapshots[st.Epoch] = snap
	return snap
}

// Revert undoes an Increment whose follow-up steps failed.
func Revert(st *state.ProtocolState) {
	delete(st.Snapshots, st.Epoch)
	st.Epoch--
}
