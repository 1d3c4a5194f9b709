package game

import (
	"context"
	"fmt"

	"github.com/avecilla-games/memoria/pkg/level"
	"github.com/avecilla-games/memoria/pkg/visibility"
)

// ActivateLevel makes the named level current: loads its scene, runs every
// triggered sequence that is eligible, and resolves object visibility.
// Interaction stays disabled for the whole activation pass.
func (e *Engine) ActivateLevel(ctx context.Context, name string) error {
	lvl, ok := e.catalog.Level(name)
	if !ok {
		return fmt.Errorf("unknown level %q", name)
	}

	// Held for the whole pass: sequences finishing in between must not
	// re-enable interaction through the executor.
	e.interact.SetInteractable(false)
	defer e.interact.SetInteractable(true)

	e.setCurrentLevel(name)
	e.levels.GetOrInit(lvl)

	if lvl.Scene != "" {
		if err := e.presenter.LoadScene(ctx, lvl.Scene); err != nil {
			return fmt.Errorf("failed to load scene %q: %w", lvl.Scene, err)
		}
	}

	if err := e.runTriggeredSequences(ctx, lvl); err != nil {
		return err
	}

	e.refreshShowables(lvl)

	if err := e.SaveGameState(ctx); err != nil {
		// A failed write must not abort the level; the next mutation
		// retries.
		e.log.Error("Failed to persist snapshot after level activation", "level", name, "error", err.Error())
	}
	return nil
}

// runTriggeredSequences repeatedly scans the level's sequences in
// declaration order, running the first eligible one, until a full scan
// finds none. A sequence is eligible when its trigger event is set (or it
// has none) and its completion event is unset (or it has none). The
// completion event is marked before the sequence runs, so the next scan
// already sees it done. Sequences without a completion event run at most
// once per activation pass.
func (e *Engine) runTriggeredSequences(ctx context.Context, lvl *level.Level) error {
	ran := make(map[int]bool, len(lvl.Sequences))

	for {
		idx := -1
		for i, ts := range lvl.Sequences {
			if ran[i] {
				continue
			}
			if ts.TriggerEvent != "" && !e.events.Get(ts.TriggerEvent) {
				continue
			}
			if ts.CompletionEvent != "" && e.events.Get(ts.CompletionEvent) {
				continue
			}
			idx = i
			break
		}
		if idx == -1 {
			return nil
		}

		ts := lvl.Sequences[idx]
		ran[idx] = true
		if ts.CompletionEvent != "" {
			e.events.Set(ts.CompletionEvent, true)
		}

		done := make(chan struct{})
		e.exec.Enqueue(ts.Sequence, func() { close(done) })

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// refreshShowables resolves which level objects should be visible for the
// current event and age-group state, animating only the ones whose
// visibility actually changed since the last resolution.
func (e *Engine) refreshShowables(lvl *level.Level) {
	state := e.levels.GetOrInit(lvl)

	wasActive := make(map[int]bool, len(state.ActiveObjectIDs))
	for _, id := range state.ActiveObjectIDs {
		wasActive[id] = true
	}

	transitions := visibility.Diff(lvl.Showables, e.events, state.CurrentAgeGroup, wasActive)
	for _, tr := range transitions {
		switch {
		case tr.Show && tr.Animate:
			e.presenter.SetObjectActive(tr.ID, true)
			e.presenter.FadeObject(tr.ID, 1, fadeDuration)
		case tr.Show:
			e.presenter.SetObjectActive(tr.ID, true)
		case tr.Animate:
			e.presenter.FadeObject(tr.ID, 0, fadeDuration)
			e.presenter.SetObjectActive(tr.ID, false)
		default:
			e.presenter.SetObjectActive(tr.ID, false)
		}
	}

	e.levels.CaptureActiveObjects(lvl.Name, visibility.ActiveIDs(transitions))
}
