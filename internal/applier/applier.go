// Package applier turns an action into a mute or unmute call.
package applier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/audio"
	"github.com/MrJer/automute/internal/logging"
	"github.com/benbjohnson/clock"
)

// RecordStore persists the last applied action.
type RecordStore interface {
	SetLastAction(rec action.Record) error
}

// Applier performs actions and remembers when the last one happened.
type Applier struct {
	muter audio.Muter
	store RecordStore
	clock clock.Clock

	mu   sync.Mutex
	last *action.Record
}

// New creates an Applier. store may be nil, in which case the last
// action is only kept in memory.
func New(muter audio.Muter, store RecordStore, clk clock.Clock) *Applier {
	if muter == nil {
		panic("applier.New: muter dependency cannot be nil")
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Applier{muter: muter, store: store, clock: clk}
}

// Apply performs a. DoNothing has no side effect. The time of the call is
// recorded for every action, including when the mute call fails; the
// mute error is still returned.
func (a *Applier) Apply(ctx context.Context, act action.Action) error {
	var applyErr error
	switch act {
	case action.Mute:
		applyErr = a.muter.SetMuted(ctx, true)
	case action.Unmute:
		applyErr = a.muter.SetMuted(ctx, false)
	case action.DoNothing:
	default:
		applyErr = fmt.Errorf("apply %d: %w", int(act), action.ErrUnknownAction)
	}

	rec := action.Record{Action: act, At: a.clock.Now()}
	if !act.Valid() {
		rec.Action = action.DoNothing
	}
	a.mu.Lock()
	a.last = &rec
	a.mu.Unlock()

	var storeErr error
	if a.store != nil {
		if err := a.store.SetLastAction(rec); err != nil {
			storeErr = fmt.Errorf("persist last action: %w", err)
			logging.Warn("failed to persist last action", "error", err)
		}
	}

	if applyErr != nil {
		logging.Error("apply action failed", "action", act.String(), "error", applyErr)
		return errors.Join(applyErr, storeErr)
	}
	logging.Info("action applied", "action", act.String())
	return storeErr
}

// Last returns the last action applied by this Applier.
func (a *Applier) Last() (action.Record, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return action.Record{}, false
	}
	return *a.last, true
}
