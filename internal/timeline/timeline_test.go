package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestStart(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	assert.Equal(t, "Order Confirmed", tl.CurrentStage)
	require.Len(t, tl.History, 1)
	assert.Equal(t, EntryActive, tl.History[0].Status)
	assert.Equal(t, t0, tl.History[0].EnteredAt)
	assert.Nil(t, tl.CompletedAt)
	assert.Equal(t, 13, p.ProgressPercent(p.ResolveStageIndex(tl.CurrentStage)))
}

func TestApplyTransition_UnknownStage(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	got, changed, err := p.ApplyTransition(tl, "Quality Check", t0.Add(time.Hour))
	require.ErrorIs(t, err, ErrUnknownStage)
	assert.False(t, changed)
	assert.Equal(t, tl, got, "a rejected transition must leave the timeline untouched")
}

func TestApplyTransition_IdempotentNoOp(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	got, changed, err := p.ApplyTransition(tl, tl.CurrentStage, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, tl, got)
	assert.Len(t, got.History, 1, "dropping a card on its own column appends nothing")
}

func TestApplyTransition_AliasIsNoOpForSameOrdinal(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	tl, changed, err := p.ApplyTransition(tl, "Shipped", t0.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)

	// "Delivered" resolves to the same ordinal as "Shipped".
	got, changed, err := p.ApplyTransition(tl, "Delivered", t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, tl, got)
}

func TestApplyTransition_CanonicalizesAlias(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	got, changed, err := p.ApplyTransition(tl, "Delivered", t0.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, "Shipped", got.CurrentStage, "alias input is stored under the canonical name")
	assert.Equal(t, "Shipped", got.History[len(got.History)-1].StageName)
}

func TestApplyTransition_HistorySemantics(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	got, changed, err := p.ApplyTransition(tl, "Stitching", t0.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)

	require.Len(t, got.History, 2)
	assert.Equal(t, EntryCompleted, got.History[0].Status)
	assert.Equal(t, t0, got.History[0].EnteredAt, "closing an entry keeps its enteredAt")
	assert.Equal(t, EntryActive, got.History[1].Status)
	assert.Equal(t, "Stitching", got.History[1].StageName)

	// Input untouched.
	assert.Equal(t, EntryActive, tl.History[0].Status)
	assert.Len(t, tl.History, 1)
}

func TestApplyTransition_TerminalInvariant(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	// Reaching the terminal stage sets CompletedAt.
	tl, _, err := p.ApplyTransition(tl, "Order Completed", t0.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, tl.CompletedAt)
	assert.Equal(t, t0.Add(time.Hour), *tl.CompletedAt)

	// Moving back out clears it: no stale completion timestamps.
	tl, _, err = p.ApplyTransition(tl, "Packing", t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, tl.CompletedAt)

	// Forward again sets a fresh one.
	tl, _, err = p.ApplyTransition(tl, "Order Completed", t0.Add(3*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, tl.CompletedAt)
	assert.Equal(t, t0.Add(3*time.Hour), *tl.CompletedAt)
}

func TestApplyTransition_RoundTripRestoresState(t *testing.T) {
	p := Default()
	tl := p.Start(t0)
	origStage := tl.CurrentStage
	origProgress := p.ProgressPercent(p.ResolveStageIndex(origStage))

	tl, _, err := p.ApplyTransition(tl, "Fabric Cutting", t0.Add(time.Hour))
	require.NoError(t, err)
	tl, _, err = p.ApplyTransition(tl, origStage, t0.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, origStage, tl.CurrentStage)
	assert.Equal(t, origProgress, p.ProgressPercent(p.ResolveStageIndex(tl.CurrentStage)))
	// History is not reversible, only state is.
	assert.Len(t, tl.History, 3)
}

func TestApplyTransition_BackwardMovesAllowed(t *testing.T) {
	p := Default()
	tl := p.Start(t0)

	tl, _, err := p.ApplyTransition(tl, "Shipped", t0.Add(time.Hour))
	require.NoError(t, err)
	tl, changed, err := p.ApplyTransition(tl, "Fabric Purchase", t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Fabric Purchase", tl.CurrentStage)

	// The log only appends; entry times stay in order even on rollback.
	for i := 1; i < len(tl.History); i++ {
		assert.False(t, tl.History[i].EnteredAt.Before(tl.History[i-1].EnteredAt))
	}
}

func TestIsDelayed(t *testing.T) {
	p := Default()
	now := t0
	past := t0.Add(-48 * time.Hour)
	future := t0.Add(48 * time.Hour)

	shipped := p.ShippedOrdinal()

	// No delivery date, never delayed.
	assert.False(t, IsDelayed(nil, 0, shipped, now))

	// Past date and still in production: delayed at every pre-shipping stage.
	for ord := 0; ord < shipped; ord++ {
		assert.True(t, IsDelayed(&past, ord, shipped, now), "ordinal %d", ord)
	}

	// The instant the order reaches shipping (or later), the flag drops.
	for ord := shipped; ord <= p.TerminalOrdinal(); ord++ {
		assert.False(t, IsDelayed(&past, ord, shipped, now), "ordinal %d", ord)
	}

	// Future date is never delayed.
	assert.False(t, IsDelayed(&future, 0, shipped, now))

	// Pipeline-bound variant agrees.
	tl := p.Start(t0)
	assert.True(t, p.OrderDelayed(tl, &past, now))
	tl, _, err := p.ApplyTransition(tl, "Delivered", now)
	require.NoError(t, err)
	assert.False(t, p.OrderDelayed(tl, &past, now))
}

func TestVisibleInStage_Terminal(t *testing.T) {
	p := Default()
	retention := 24 * time.Hour
	now := t0

	completed25h := t0.Add(-25 * time.Hour)
	completed23h := t0.Add(-23 * time.Hour)

	mk := func(completedAt *time.Time) Timeline {
		return Timeline{CurrentStage: "Order Completed", CompletedAt: completedAt}
	}

	assert.False(t, p.VisibleInStage(mk(&completed25h), "Order Completed", now, retention))
	assert.True(t, p.VisibleInStage(mk(&completed23h), "Order Completed", now, retention))

	// Missing completion timestamp is fail-open: the order stays visible.
	assert.True(t, p.VisibleInStage(mk(nil), "Order Completed", now, retention))
}

func TestVisibleInStage_NonTerminal(t *testing.T) {
	p := Default()
	retention := 24 * time.Hour
	tl := Timeline{CurrentStage: "Stitching"}

	assert.True(t, p.VisibleInStage(tl, "Stitching", t0, retention))
	assert.False(t, p.VisibleInStage(tl, "Packing", t0, retention))
	assert.False(t, p.VisibleInStage(tl, "No Such Stage", t0, retention))

	// Unset current stage appears in no column.
	assert.False(t, p.VisibleInStage(Timeline{}, "Stitching", t0, retention))
}

// Full scenario over the default 8-stage pipeline: ordinal 0 at 13%,
// Stitching at 63%, completion at 100%, rollback to Packing at 75% with the
// completion timestamp cleared.
func TestEndToEndScenario(t *testing.T) {
	p := Default()
	now := t0

	tl := p.Start(now)
	assert.Equal(t, 0, p.ResolveStageIndex(tl.CurrentStage))
	assert.Equal(t, 13, p.ProgressPercent(p.ResolveStageIndex(tl.CurrentStage)))

	now = now.Add(time.Hour)
	tl, changed, err := p.ApplyTransition(tl, "Stitching", now)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, 4, p.ResolveStageIndex(tl.CurrentStage))
	assert.Equal(t, 63, p.ProgressPercent(p.ResolveStageIndex(tl.CurrentStage)))
	require.Len(t, tl.History, 2)
	assert.Equal(t, EntryCompleted, tl.History[0].Status)
	assert.Equal(t, EntryActive, tl.History[1].Status)

	now = now.Add(time.Hour)
	tl, _, err = p.ApplyTransition(tl, "Order Completed", now)
	require.NoError(t, err)
	assert.Equal(t, 100, p.ProgressPercent(p.ResolveStageIndex(tl.CurrentStage)))
	require.NotNil(t, tl.CompletedAt)

	now = now.Add(time.Hour)
	tl, _, err = p.ApplyTransition(tl, "Packing", now)
	require.NoError(t, err)
	assert.Equal(t, 75, p.ProgressPercent(p.ResolveStageIndex(tl.CurrentStage)))
	assert.Nil(t, tl.CompletedAt)

	// completedAt is non-nil iff the current ordinal is terminal,
	// at every step of any transition sequence.
	steps := []string{"Shipped", "Order Completed", "Order Confirmed", "Order Completed", "Delivered"}
	for _, target := range steps {
		now = now.Add(time.Minute)
		tl, _, err = p.ApplyTransition(tl, target, now)
		require.NoError(t, err)
		atTerminal := p.ResolveStageIndex(tl.CurrentStage) == p.TerminalOrdinal()
		assert.Equal(t, atTerminal, tl.CompletedAt != nil, "after moving to %s", target)
	}
}
