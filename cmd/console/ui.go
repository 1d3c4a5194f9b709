package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/avecilla-games/memoria/internal/game"
	"github.com/avecilla-games/memoria/pkg/item"
)

const GameTitle = "MEMORIA"

type entryKind int

const (
	entryDialogue entryKind = iota
	entryMessage
	entryItem
	entryScene
	entrySystem
)

// entry is one transcript line, stored unstyled so the whole transcript can
// be rewrapped when the window resizes.
type entry struct {
	kind    entryKind
	speaker string
	text    string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine        *game.Engine
	storyViewport viewport.Model
	metaViewport  viewport.Model
	ready         bool
	width         int
	height        int
	err           error

	transcript   []entry
	interactable bool
	waitingHint  bool
	saveFlash    bool

	// Start menu state
	showStartModal bool
	hasSave        bool
	startOptions   []string
	selectedOption int

	// Quit confirmation state
	showQuitModal bool
}

type startedMsg struct {
	err error
}

type saveFlashDoneMsg struct{}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("105")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

var titleCaser = cases.Title(language.English)

func NewConsoleUI(engine *game.Engine, hasSave bool) ConsoleUI {
	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	options := []string{"New Game"}
	if hasSave {
		options = []string{"Continue", "New Game"}
	}

	return ConsoleUI{
		engine:         engine,
		storyViewport:  storyVp,
		metaViewport:   metaVp,
		showStartModal: true,
		hasSave:        hasSave,
		startOptions:   options,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showStartModal {
		return m.updateStartModal(msg)
	}

	var (
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	if handled, cmd := m.handleEngineMsg(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.storyViewport, vpCmd = m.storyViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.writeStoryContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			if m.engine.PauseAllowed() {
				m.showQuitModal = true
			}
			return m, nil
		case tea.KeyEnter, tea.KeySpace:
			m.engine.Confirm()
			return m, nil
		}
		switch msg.String() {
		case "c":
			m.copyTranscript()
			m.writeStoryContent()
		}
	}

	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(vpCmd, mvCmd)
}

// handleEngineMsg applies engine-originated messages to the model. It is
// shared between the main loop and the start modal so narration emitted
// while the menu is still up is not lost.
func (m *ConsoleUI) handleEngineMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case dialogueMsg:
		m.transcript = append(m.transcript, entry{kind: entryDialogue, speaker: msg.actor, text: msg.line})
		m.waitingHint = true
		m.writeStoryContent()

	case dialogueHiddenMsg:
		m.waitingHint = false
		m.writeStoryContent()

	case messageMsg:
		m.transcript = append(m.transcript, entry{kind: entryMessage, text: msg.text})
		if msg.after != "" {
			m.transcript = append(m.transcript, entry{kind: entryMessage, text: msg.after})
		}
		m.writeStoryContent()

	case itemNoticeMsg:
		text := fmt.Sprintf("%s %s", titleCaser.String(msg.verb), msg.title)
		if msg.icon != "" {
			text = msg.icon + " " + text
		}
		m.transcript = append(m.transcript, entry{kind: entryItem, text: text})
		m.writeStoryContent()
		m.writeMetadata()

	case sceneMsg:
		m.transcript = append(m.transcript, entry{kind: entryScene, text: msg.scene})
		m.writeStoryContent()
		m.writeMetadata()

	case interactMsg:
		m.interactable = msg.enabled
		if msg.enabled {
			m.waitingHint = false
		}
		m.writeStoryContent()
		m.writeMetadata()

	case shakeMsg:
		m.transcript = append(m.transcript, entry{kind: entrySystem, text: "The room trembles."})
		m.writeStoryContent()

	case saveIndicatorMsg:
		m.saveFlash = true
		m.writeMetadata()
		return true, tea.Tick(msg.duration, func(time.Time) tea.Msg {
			return saveFlashDoneMsg{}
		})

	case saveFlashDoneMsg:
		m.saveFlash = false
		m.writeMetadata()

	case screenFadeMsg:
		// Fading to black marks the transition; fading back needs no line.
		if msg.alpha > 0 {
			m.transcript = append(m.transcript, entry{kind: entrySystem, text: "· · ·"})
			m.writeStoryContent()
		}

	case objectActiveMsg, objectFadeMsg:
		// Scene objects have no text rendering; the meta panel reflects
		// them through level state.
		m.writeMetadata()

	case engineStoppedMsg:
		m.err = msg.err
		m.writeStoryContent()

	default:
		return false, nil
	}

	return true, nil
}

func (m *ConsoleUI) resize(width, height int) {
	m.width = width
	m.height = height

	storyWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - storyWidth - 6

	m.storyViewport.Width = storyWidth - 2
	m.storyViewport.Height = m.height - 5
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.ready = true
}

// writeStoryContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeStoryContent() {
	storyWidth := m.storyViewport.Width - 6
	if storyWidth < 10 {
		storyWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(GameTitle) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", storyWidth)) + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case entryDialogue:
			wrapped := wordwrap.String(e.text, storyWidth-len(e.speaker)-2)
			content.WriteString(speakerStyle.Render(e.speaker+": ") + wrapped + "\n\n")
		case entryMessage:
			content.WriteString(messageStyle.Render(wordwrap.String(e.text, storyWidth)) + "\n\n")
		case entryItem:
			content.WriteString(itemStyle.Render(wordwrap.String(e.text, storyWidth)) + "\n\n")
		case entryScene:
			content.WriteString(sceneStyle.Render("· "+e.text+" ·") + "\n\n")
		case entrySystem:
			content.WriteString(separatorStyle.Render(wordwrap.String(e.text, storyWidth)) + "\n\n")
		}
	}

	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.waitingHint {
		content.WriteString(promptStyle.Render("Press Space to continue..."))
	}

	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("JOURNAL") + "\n\n")

	content.WriteString("Level:\n")
	content.WriteString(m.engine.CurrentLevel() + "\n\n")

	picked := m.engine.Items().PickedItems()
	content.WriteString(fmt.Sprintf("Memories: %d\n\n", len(picked)))
	for _, cat := range item.Categories {
		items := m.engine.Items().ItemsOfCategory(cat)
		if len(items) == 0 {
			continue
		}
		content.WriteString(titleCaser.String(string(cat)) + ":\n")
		for _, it := range items {
			content.WriteString("• " + it.Title + "\n")
		}
		content.WriteString("\n")
	}

	if m.saveFlash {
		content.WriteString(savedStyle.Render("Saved.") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Space: Continue\n")
	content.WriteString("• c: Copy transcript\n")
	content.WriteString("• Ctrl+C: Quit\n")

	m.metaViewport.SetContent(content.String())
}

func (m *ConsoleUI) copyTranscript() {
	var plain strings.Builder
	for _, e := range m.transcript {
		if e.speaker != "" {
			plain.WriteString(e.speaker + ": ")
		}
		plain.WriteString(e.text + "\n")
	}
	if err := clipboard.WriteAll(plain.String()); err != nil {
		m.transcript = append(m.transcript, entry{kind: entrySystem, text: "Could not copy transcript."})
		return
	}
	m.transcript = append(m.transcript, entry{kind: entrySystem, text: "Transcript copied to clipboard."})
}

func (m ConsoleUI) updateStartModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleEngineMsg(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.showStartModal = false
		m.writeStoryContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedOption > 0 {
				m.selectedOption--
			}
		case tea.KeyDown:
			if m.selectedOption < len(m.startOptions)-1 {
				m.selectedOption++
			}
		case tea.KeyEnter:
			return m, m.startGame(m.startOptions[m.selectedOption])
		}
	}

	return m, nil
}

func (m ConsoleUI) startGame(option string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if option == "Continue" {
			return startedMsg{err: m.engine.Start(ctx)}
		}
		return startedMsg{err: m.engine.NewGame(ctx)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N", "esc":
				m.showQuitModal = false
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Progress is saved automatically.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderStartModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(GameTitle))
	content.WriteString("\n\n")

	if m.err != nil {
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to start: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else {
		for i, option := range m.startOptions {
			if i == m.selectedOption {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", option)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", option)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showStartModal {
		return m.renderStartModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	storyWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - storyWidth - 6

	statusLine := promptStyle.Render("Space: continue · c: copy · Ctrl+C: quit")
	if !m.interactable {
		statusLine = promptStyle.Render("...")
	}

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			statusLine,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}
