package game

import "sync"

// interactionGate arbitrates the presenter's interactable flag between the
// level orchestrator and the action executor. Disables nest: a sequence
// running inside a level activation must not re-enable interaction when it
// finishes, only the last release reaches the presenter. Every holder still
// releases on its exit path, so interaction always comes back.
type interactionGate struct {
	presenter Presenter

	mu    sync.Mutex
	depth int
}

func (g *interactionGate) SetInteractable(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !enabled {
		g.depth++
		if g.depth == 1 {
			g.presenter.SetInteractable(false)
		}
		return
	}
	if g.depth > 0 {
		g.depth--
	}
	if g.depth == 0 {
		g.presenter.SetInteractable(true)
	}
}
