package game

import (
	"context"
	"time"
)

// Presenter is the presentation layer as seen by the engine. The engine
// tells it what changed; rendering, animation and asset loading stay on the
// other side of this interface. Implementations must be safe for calls from
// the executor goroutine.
type Presenter interface {
	// ShowDialogue displays a dialogue line. position is "left" or
	// "right", selecting which side the actor portrait occupies.
	ShowDialogue(actor, line, position string)

	// HideDialogue dismisses the dialogue box.
	HideDialogue()

	// ShowMessage displays a transient full-screen message, optionally
	// followed by a second text once the duration elapses.
	ShowMessage(text string, duration time.Duration, afterText string)

	// ShowItemNotice announces an inventory change ("picked"/"discarded").
	ShowItemNotice(icon, verb, title string)

	// SetInteractable enables or disables player interaction.
	SetInteractable(enabled bool)

	// SetObjectActive flips a showable object without a transition.
	SetObjectActive(id int, active bool)

	// FadeObject reveals (targetAlpha 1) or hides (targetAlpha 0) a
	// showable object with a fade transition.
	FadeObject(id int, targetAlpha float64, duration time.Duration)
	FadeScreen(targetAlpha float64, duration time.Duration)

	// ShakeScreen plays the screen shake effect.
	ShakeScreen()

	// ShowSaveIndicator flashes the save indicator.
	ShowSaveIndicator(duration time.Duration)

	// LoadScene loads the scene/asset bundle for a level and returns
	// when it is ready.
	LoadScene(ctx context.Context, scene string) error
}
