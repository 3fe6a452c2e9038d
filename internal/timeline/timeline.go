package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownStage rejects a transition whose target label resolves to no
// stage or alias. The order is left untouched.
var ErrUnknownStage = errors.New("unknown stage")

// History entry statuses. Exactly one entry is active at a time: the stage
// the order currently occupies.
const (
	EntryActive    = "active"
	EntryCompleted = "completed"
)

// HistoryEntry is one record of the append-only stage log.
type HistoryEntry struct {
	StageName string    `json:"stage_name"`
	EnteredAt time.Time `json:"entered_at"`
	Status    string    `json:"status"`
}

// Timeline is the slice of an order the engine owns: the current-stage
// pointer, the stage log and the completion timestamp. It is a value type;
// ApplyTransition returns a new Timeline and never mutates its input, which
// gives callers the all-or-nothing guarantee for free.
type Timeline struct {
	CurrentStage string
	History      []HistoryEntry
	CompletedAt  *time.Time
}

// Start returns the timeline of a freshly created order: first stage
// current, one active history entry.
func (p *Pipeline) Start(now time.Time) Timeline {
	first := p.stages[0].Name
	return Timeline{
		CurrentStage: first,
		History: []HistoryEntry{
			{StageName: first, EnteredAt: now, Status: EntryActive},
		},
	}
}

// ApplyTransition moves the order to newStage. It returns the updated
// timeline and whether anything changed:
//
//   - an unresolvable label returns ErrUnknownStage and the input unchanged;
//   - a target equal to the current ordinal is an idempotent no-op
//     (changed=false) so dropping a card on its own column appends no
//     history and fires no notification;
//   - otherwise the open history entry is closed, a new active entry is
//     appended under the canonical stage name, and CompletedAt is set or
//     cleared per the terminal-stage invariant.
//
// Any ordinal-to-ordinal move is legal, forward or backward; manual
// correction of a mis-dragged card must always be possible.
func (p *Pipeline) ApplyTransition(tl Timeline, newStage string, now time.Time) (Timeline, bool, error) {
	target := p.ResolveStageIndex(newStage)
	if target == NotFound {
		return tl, false, fmt.Errorf("%w: %q", ErrUnknownStage, newStage)
	}

	if p.ResolveStageIndex(tl.CurrentStage) == target {
		return tl, false, nil
	}

	canonical := p.stages[target].Name

	history := make([]HistoryEntry, len(tl.History), len(tl.History)+1)
	copy(history, tl.History)
	for i := range history {
		if history[i].Status == EntryActive {
			history[i].Status = EntryCompleted
		}
	}
	history = append(history, HistoryEntry{
		StageName: canonical,
		EnteredAt: now,
		Status:    EntryActive,
	})

	next := Timeline{
		CurrentStage: canonical,
		History:      history,
	}
	if target == p.TerminalOrdinal() {
		completed := now
		next.CompletedAt = &completed
	}

	return next, true, nil
}

// VisibleInStage reports whether the order belongs on the board column for
// stageName. Non-terminal columns show every order currently in that stage.
// The terminal column additionally drops orders completed more than
// retention ago; a missing completion timestamp keeps the order visible
// (fail-open), never hides it.
func (p *Pipeline) VisibleInStage(tl Timeline, stageName string, now time.Time, retention time.Duration) bool {
	col := p.ResolveStageIndex(stageName)
	if col == NotFound {
		return false
	}
	if p.ResolveStageIndex(tl.CurrentStage) != col {
		return false
	}
	if col != p.TerminalOrdinal() {
		return true
	}
	if tl.CompletedAt == nil {
		return true
	}
	return now.Sub(*tl.CompletedAt) <= retention
}

// IsDelayed derives the delay flag: true only when a delivery date exists,
// it is in the past, and the order has not yet reached the shipped stage.
// Terminal is at or past shipped, so completed orders are never flagged.
// Pure function of its inputs; callers supply the clock.
func IsDelayed(expectedDelivery *time.Time, ordinal, shippedOrdinal int, now time.Time) bool {
	if expectedDelivery == nil {
		return false
	}
	if ordinal >= shippedOrdinal {
		return false
	}
	return expectedDelivery.Before(now)
}

// OrderDelayed is the pipeline-bound convenience over IsDelayed.
func (p *Pipeline) OrderDelayed(tl Timeline, expectedDelivery *time.Time, now time.Time) bool {
	return IsDelayed(expectedDelivery, p.ResolveStageIndex(tl.CurrentStage), p.shipped, now)
}
