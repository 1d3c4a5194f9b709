package game

import (
	"context"
	"fmt"
	"time"

	"github.com/avecilla-games/memoria/pkg/action"
	"github.com/avecilla-games/memoria/pkg/level"
)

// registerEffects binds every action kind to its effect. The executor
// panics on an unregistered kind, so this table must stay in step with
// action.Kinds.
func (e *Engine) registerEffects() {
	e.exec.RegisterEffect(action.KindShowDialogue, func(ctx context.Context, a action.Action) error {
		e.presenter.ShowDialogue(a.Actor, a.Line, a.Position)
		return nil
	})
	e.exec.RegisterEffect(action.KindHideDialogue, func(ctx context.Context, a action.Action) error {
		e.presenter.HideDialogue()
		return nil
	})
	e.exec.RegisterEffect(action.KindShowMessage, func(ctx context.Context, a action.Action) error {
		e.presenter.ShowMessage(a.Message, time.Duration(a.Duration*float64(time.Second)), a.AfterMessage)
		return nil
	})
	e.exec.RegisterEffect(action.KindTriggerEvent, func(ctx context.Context, a action.Action) error {
		e.events.Set(a.Event, true)
		return nil
	})
	e.exec.RegisterEffect(action.KindPickItem, func(ctx context.Context, a action.Action) error {
		e.items.Pick(a.Item)
		return nil
	})
	e.exec.RegisterEffect(action.KindDiscardItem, func(ctx context.Context, a action.Action) error {
		e.items.Discard(a.Item)
		return nil
	})
	e.exec.RegisterEffect(action.KindChangeAgeGroup, func(ctx context.Context, a action.Action) error {
		group := level.AgeGroup(a.AgeGroup)
		if !group.Valid() {
			return fmt.Errorf("invalid age group %q", a.AgeGroup)
		}
		e.levels.ChangeAgeGroup(e.CurrentLevel(), group)
		return nil
	})
	// Activation must not run on the executor goroutine: it blocks on the
	// sequences it enqueues. Queue the request and let Run handle it.
	e.exec.RegisterEffect(action.KindLoadLevel, func(ctx context.Context, a action.Action) error {
		e.requestLevel(levelRequest{name: a.Level, fade: a.FadeOverlay})
		return nil
	})
	e.exec.RegisterEffect(action.KindScreenShake, func(ctx context.Context, a action.Action) error {
		e.presenter.ShakeScreen()
		return nil
	})
}
