package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avecilla-games/memoria/internal/config"
	"github.com/avecilla-games/memoria/internal/content"
	"github.com/avecilla-games/memoria/internal/logger"
	"github.com/avecilla-games/memoria/internal/storage"
	"github.com/avecilla-games/memoria/pkg/action"
	"github.com/avecilla-games/memoria/pkg/event"
	"github.com/avecilla-games/memoria/pkg/item"
	"github.com/avecilla-games/memoria/pkg/level"
	"github.com/avecilla-games/memoria/pkg/snapshot"
)

const (
	fadeDuration          = time.Second
	saveTimeout           = 5 * time.Second
	saveIndicatorDuration = 2 * time.Second
	levelQueueSize        = 8
)

// Engine owns the narrative state (events, items, level state) and drives
// the action executor and level orchestration. It is constructed once at
// startup with its collaborators injected; there are no package-level
// singletons.
type Engine struct {
	log       *slog.Logger
	catalog   *content.Catalog
	store     storage.Storage
	presenter Presenter

	events   *event.Store
	items    *item.Store
	levels   *level.Store
	exec     *action.Executor
	interact *interactionGate

	levelReqs chan levelRequest

	mu           sync.Mutex
	sessionID    uuid.UUID
	currentLevel string
	restoring    bool
}

// New wires an engine over the given content catalog, snapshot storage and
// presenter.
func New(cfg *config.Config, log *slog.Logger, catalog *content.Catalog, store storage.Storage, presenter Presenter) *Engine {
	interact := &interactionGate{presenter: presenter}
	e := &Engine{
		log:       log,
		catalog:   catalog,
		store:     store,
		presenter: presenter,
		events:    event.NewStore(),
		items:     item.NewStore(catalog.Items),
		levels:    level.NewStore(),
		exec:      action.NewExecutor(log, interact, cfg.ActionWait),
		interact:  interact,
		levelReqs: make(chan levelRequest, levelQueueSize),
		sessionID: uuid.New(),
	}

	e.registerEffects()

	// Every mutation schedules a snapshot write, as in-progress state is
	// never allowed to outlive a crash by more than one transition.
	e.events.Subscribe(func(name string, state bool) {
		e.scheduleSave()
	})
	e.items.Subscribe(func(it item.Item, verb item.Verb) {
		e.presenter.ShowItemNotice(it.Icon, string(verb), it.Title)
		e.scheduleSave()
	})
	e.levels.Subscribe(func(levelName string, group level.AgeGroup) {
		e.onAgeGroupChanged(levelName)
	})

	return e
}

// Events exposes the event store. External readers must treat it as
// read-only; writes go through actions.
func (e *Engine) Events() *event.Store { return e.events }

// Items exposes the item store, read-only for external callers.
func (e *Engine) Items() *item.Store { return e.items }

// Levels exposes the level state store, read-only for external callers.
func (e *Engine) Levels() *level.Store { return e.levels }

// Confirm forwards the player's "continue" input to the executor.
func (e *Engine) Confirm() { e.exec.Confirm() }

// Executing reports whether an action sequence is currently running.
func (e *Engine) Executing() bool { return e.exec.Executing() }

// CurrentLevel returns the name of the active level.
func (e *Engine) CurrentLevel() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentLevel
}

// PauseAllowed reports whether the current level permits the pause menu.
func (e *Engine) PauseAllowed() bool {
	lvl, ok := e.catalog.Level(e.CurrentLevel())
	if !ok {
		return true
	}
	return lvl.PauseAllowed
}

// SessionID identifies the play session across saves.
func (e *Engine) SessionID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

// HasSave reports whether a snapshot exists in storage.
func (e *Engine) HasSave(ctx context.Context) (bool, error) {
	return e.store.HasSnapshot(ctx)
}

type levelRequest struct {
	name string
	fade bool
}

// RequestLevel queues a level activation. Called from load_level actions
// and from the shell (new game / continue); never blocks.
func (e *Engine) RequestLevel(name string) {
	e.requestLevel(levelRequest{name: name})
}

func (e *Engine) requestLevel(req levelRequest) {
	select {
	case e.levelReqs <- req:
	default:
		e.log.Warn("Level request queue full, dropping request", "level", req.name)
	}
}

// Run drives the engine until the context is cancelled: it starts the
// action executor and services level activation requests.
func (e *Engine) Run(ctx context.Context) error {
	go func() {
		_ = e.exec.Run(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-e.levelReqs:
			if req.fade {
				e.presenter.FadeScreen(1, fadeDuration)
			}
			if err := e.ActivateLevel(ctx, req.name); err != nil {
				logger.WithError(e.log, err).Error("Level activation failed", "level", req.name)
			}
			if req.fade {
				e.presenter.FadeScreen(0, fadeDuration)
			}
		}
	}
}

// Start restores the saved session if one exists and queues the first level
// activation.
func (e *Engine) Start(ctx context.Context) error {
	saved, err := e.LoadGameState(ctx)
	if err != nil {
		return err
	}
	if saved == "" {
		saved = e.catalog.StartLevel
	}
	e.RequestLevel(saved)
	return nil
}

// NewGame discards the saved session and queues the start level.
func (e *Engine) NewGame(ctx context.Context) error {
	if err := e.store.DeleteSnapshot(ctx); err != nil {
		return fmt.Errorf("failed to discard save: %w", err)
	}

	e.events.Reset()
	e.items.Reset()
	e.levels.Reset()

	e.mu.Lock()
	e.sessionID = uuid.New()
	e.currentLevel = ""
	e.mu.Unlock()

	e.RequestLevel(e.catalog.StartLevel)
	return nil
}

// LoadGameState repopulates the stores from the stored snapshot. An absent
// or unreadable snapshot leaves everything at defaults and returns an empty
// level name. The import is silent: no notifications, no saves.
func (e *Engine) LoadGameState(ctx context.Context) (string, error) {
	snap, err := e.store.LoadSnapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load game state: %w", err)
	}
	if snap == nil {
		return "", nil
	}

	e.mu.Lock()
	e.restoring = true
	e.mu.Unlock()

	e.events.ImportAll(snap.Events)
	e.items.ImportAll(snap.Items)
	e.levels.ImportAll(snap.Levels)

	e.mu.Lock()
	e.restoring = false
	e.sessionID = snap.SessionID
	e.currentLevel = snap.CurrentLevel
	e.mu.Unlock()

	e.log.Info("Game state restored",
		"session_id", snap.SessionID,
		"current_level", snap.CurrentLevel,
		"events", len(snap.Events),
		"items", len(snap.Items))

	return snap.CurrentLevel, nil
}

// SaveGameState writes the full snapshot: current level plus the contents
// of all three stores.
func (e *Engine) SaveGameState(ctx context.Context) error {
	e.mu.Lock()
	if e.restoring {
		e.mu.Unlock()
		return nil
	}
	snap := &snapshot.GameSnapshot{
		Version:      snapshot.Version,
		SessionID:    e.sessionID,
		CurrentLevel: e.currentLevel,
	}
	e.mu.Unlock()

	snap.Events = e.events.ExportAll()
	snap.Levels = e.levels.ExportAll()
	snap.Items = e.items.ExportAll()

	if err := e.store.SaveSnapshot(ctx, snap); err != nil {
		return err
	}
	e.presenter.ShowSaveIndicator(saveIndicatorDuration)
	return nil
}

func (e *Engine) scheduleSave() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := e.SaveGameState(ctx); err != nil {
		logger.WithError(e.log, err).Error("Failed to persist snapshot")
	}
}

func (e *Engine) setCurrentLevel(name string) {
	e.mu.Lock()
	e.currentLevel = name
	e.mu.Unlock()
}

func (e *Engine) onAgeGroupChanged(levelName string) {
	if levelName == e.CurrentLevel() {
		if lvl, ok := e.catalog.Level(levelName); ok {
			e.refreshShowables(lvl)
		}
	}
	e.scheduleSave()
}
