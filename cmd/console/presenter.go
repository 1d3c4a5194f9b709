package main

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages the engine pushes into the BubbleTea event loop.
type (
	dialogueMsg struct {
		actor    string
		line     string
		position string
	}
	dialogueHiddenMsg struct{}
	messageMsg        struct {
		text     string
		duration time.Duration
		after    string
	}
	itemNoticeMsg struct {
		icon  string
		verb  string
		title string
	}
	interactMsg struct {
		enabled bool
	}
	objectActiveMsg struct {
		id     int
		active bool
	}
	objectFadeMsg struct {
		id       int
		alpha    float64
		duration time.Duration
	}
	screenFadeMsg struct {
		alpha    float64
		duration time.Duration
	}
	shakeMsg         struct{}
	saveIndicatorMsg struct {
		duration time.Duration
	}
	sceneMsg struct {
		scene string
	}
	engineStoppedMsg struct {
		err error
	}
)

// teaPresenter adapts the engine's presentation calls to BubbleTea
// messages. Engine goroutines never touch the model directly; everything
// funnels through Program.Send.
type teaPresenter struct {
	mu      sync.Mutex
	program *tea.Program
}

func (p *teaPresenter) setProgram(program *tea.Program) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.program = program
}

func (p *teaPresenter) send(msg tea.Msg) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}

func (p *teaPresenter) ShowDialogue(actor, line, position string) {
	p.send(dialogueMsg{actor: actor, line: line, position: position})
}

func (p *teaPresenter) HideDialogue() {
	p.send(dialogueHiddenMsg{})
}

func (p *teaPresenter) ShowMessage(text string, duration time.Duration, afterText string) {
	p.send(messageMsg{text: text, duration: duration, after: afterText})
}

func (p *teaPresenter) ShowItemNotice(icon, verb, title string) {
	p.send(itemNoticeMsg{icon: icon, verb: verb, title: title})
}

func (p *teaPresenter) SetInteractable(enabled bool) {
	p.send(interactMsg{enabled: enabled})
}

func (p *teaPresenter) SetObjectActive(id int, active bool) {
	p.send(objectActiveMsg{id: id, active: active})
}

func (p *teaPresenter) FadeObject(id int, targetAlpha float64, duration time.Duration) {
	p.send(objectFadeMsg{id: id, alpha: targetAlpha, duration: duration})
}

func (p *teaPresenter) FadeScreen(targetAlpha float64, duration time.Duration) {
	p.send(screenFadeMsg{alpha: targetAlpha, duration: duration})
}

func (p *teaPresenter) ShakeScreen() {
	p.send(shakeMsg{})
}

func (p *teaPresenter) ShowSaveIndicator(duration time.Duration) {
	p.send(saveIndicatorMsg{duration: duration})
}

func (p *teaPresenter) LoadScene(ctx context.Context, scene string) error {
	p.send(sceneMsg{scene: scene})
	return nil
}
