package action

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Effect applies one action's consequences. Effects are registered per kind
// by the engine at startup; the executor only dispatches.
type Effect func(ctx context.Context, a Action) error

// Interactor is the slice of the presentation layer the executor needs:
// player interaction is disabled while a sequence runs.
type Interactor interface {
	SetInteractable(enabled bool)
}

type request struct {
	seq      *Sequence
	callback func()
}

// Executor runs action sequences one at a time. Requests arriving while a
// sequence is active are queued FIFO; an identical pending sequence is
// queued again, not deduplicated. All execution happens on the goroutine
// that called Run, so mutations made by action N are visible to action N+1.
type Executor struct {
	log         *slog.Logger
	interact    Interactor
	defaultWait time.Duration

	mu      sync.Mutex
	effects map[Kind]Effect
	pending []request
	wake    chan struct{}
	confirm chan struct{}
	running atomic.Bool
}

// NewExecutor creates an executor. defaultWait is the pause between actions
// when an action does not set its own.
func NewExecutor(log *slog.Logger, interact Interactor, defaultWait time.Duration) *Executor {
	return &Executor{
		log:         log,
		interact:    interact,
		defaultWait: defaultWait,
		effects:     make(map[Kind]Effect),
		wake:        make(chan struct{}, 1),
		confirm:     make(chan struct{}, 1),
	}
}

// RegisterEffect binds an effect to an action kind. Registering the same
// kind twice is a programming error.
func (e *Executor) RegisterEffect(kind Kind, effect Effect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, dup := e.effects[kind]; dup {
		panic(fmt.Sprintf("action: effect for kind %q registered twice", kind))
	}
	e.effects[kind] = effect
}

// Enqueue schedules a sequence for execution. The callback, if any, runs on
// the executor goroutine after the sequence finishes, normally or by abort,
// and before the next queued sequence starts. Enqueue never blocks.
func (e *Executor) Enqueue(seq *Sequence, callback func()) {
	e.mu.Lock()
	e.pending = append(e.pending, request{seq: seq, callback: callback})
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Confirm signals the player's "continue" input. The signal is a single-slot
// latch: confirms arriving while no action is waiting are held until one is,
// and multiple confirms collapse into a single proceed.
func (e *Executor) Confirm() {
	select {
	case e.confirm <- struct{}{}:
	default:
	}
}

// Executing reports whether a sequence is currently mid-run.
func (e *Executor) Executing() bool {
	return e.running.Load()
}

// QueueDepth returns the number of sequences waiting to run.
func (e *Executor) QueueDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Run services the sequence queue until the context is cancelled. Pending
// sequences are abandoned on cancellation; the in-flight sequence stops at
// its current suspension point and interaction is re-enabled.
func (e *Executor) Run(ctx context.Context) error {
	for {
		req, ok := e.next()
		if !ok {
			select {
			case <-ctx.Done():
				e.drainPending()
				return ctx.Err()
			case <-e.wake:
				continue
			}
		}

		if err := ctx.Err(); err != nil {
			e.drainPending()
			return err
		}
		e.runSequence(ctx, req)
	}
}

func (e *Executor) next() (request, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return request{}, false
	}
	req := e.pending[0]
	e.pending = e.pending[1:]
	return req, true
}

func (e *Executor) drainPending() {
	e.mu.Lock()
	n := len(e.pending)
	e.pending = nil
	e.mu.Unlock()
	if n > 0 {
		e.log.Warn("Abandoning pending sequences on shutdown", "count", n)
	}
}

func (e *Executor) runSequence(ctx context.Context, req request) {
	e.running.Store(true)
	e.interact.SetInteractable(false)
	defer func() {
		e.interact.SetInteractable(true)
		e.running.Store(false)
	}()

	e.log.Debug("Sequence started", "sequence", req.seq.Name, "actions", len(req.seq.Actions))

	completed := true
	for i, a := range req.seq.Actions {
		e.mu.Lock()
		effect, ok := e.effects[a.Kind]
		e.mu.Unlock()
		if !ok {
			// Authoring or wiring bug, never skipped silently.
			panic(fmt.Sprintf("action: no effect registered for kind %q (sequence %q, action %d)", a.Kind, req.seq.Name, i))
		}

		if err := effect(ctx, a); err != nil {
			e.log.Error("Action effect failed, aborting sequence",
				"sequence", req.seq.Name, "action", i, "kind", a.Kind, "error", err)
			completed = false
			break
		}

		wait := e.defaultWait
		if a.WaitAfter > 0 {
			wait = a.WaitAfterDuration()
		}
		if wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return
			}
		}

		if a.WaitForInput {
			select {
			case <-e.confirm:
			case <-ctx.Done():
				return
			}
		}
	}

	if completed {
		e.log.Debug("Sequence completed", "sequence", req.seq.Name)
	} else {
		e.log.Warn("Sequence aborted", "sequence", req.seq.Name)
	}

	// The callback fires even on abort so waiters on the sequence are
	// released.
	if req.callback != nil {
		req.callback()
	}
}
