// Package repl is the interactive front end: it reads user input, routes
// slash commands, and drives the ask-the-model flow. All state changes go
// through the planner reducer; the REPL only dispatches actions and
// renders the resulting snapshots.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/chzyer/readline"

	"github.com/easycal/easycal/internal/api"
	"github.com/easycal/easycal/internal/config"
	"github.com/easycal/easycal/internal/log"
	"github.com/easycal/easycal/internal/notify"
	"github.com/easycal/easycal/internal/plan"
	"github.com/easycal/easycal/internal/planner"
	"github.com/easycal/easycal/internal/schedule"
	"github.com/easycal/easycal/internal/ui"
)

// undoWindow is how long a model proposal stays revertible.
const undoWindow = 10 * time.Second

type REPL struct {
	config     *config.Config
	provider   api.Provider
	reducer    *planner.Reducer
	orch       *plan.Orchestrator
	supervisor *plan.Supervisor
	store      schedule.Store
	watcher    *notify.Watcher
	rl         *readline.Instance
	formatter  *ui.Formatter
	spinner    *ui.Spinner

	state   planner.State
	pending []planner.Attachment

	undoSchedule []planner.ScheduleItem
	undoDeadline time.Time
}

// New wires the REPL. The watcher may be nil when reminders are disabled.
func New(provider api.Provider, store schedule.Store, watcher *notify.Watcher, cfg *config.Config) (*REPL, error) {
	formatter := ui.NewFormatter(cfg.UI.ColoredOutput, cfg.Provider, cfg.Location())

	rl, err := setupReadline(formatter.FormatPrompt())
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	reducer := planner.NewReducer(cfg.Location())
	reducer.Tolerance = cfg.Tolerance()

	return &REPL{
		config:     cfg,
		provider:   provider,
		reducer:    reducer,
		orch:       plan.NewOrchestrator(provider, cfg),
		supervisor: plan.NewSupervisor(),
		store:      store,
		watcher:    watcher,
		rl:         rl,
		formatter:  formatter,
		spinner:    ui.NewSpinner(cfg.UI.ColoredOutput),
		state:      planner.InitialState(),
	}, nil
}

// Start restores the saved schedule and runs the input loop until /quit,
// EOF, or context cancellation.
func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.restoreSchedule()
	r.displayWelcome()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if isCommand {
			if err := r.handleCommand(command, args); err != nil {
				r.displayError(err)
			}

			if command == "/quit" || command == "/exit" || command == "/q" {
				return nil
			}

			continue
		}

		r.handleMessage(ctx, input)
	}
}

// isEOF covers both end-of-input and Ctrl+C at an empty prompt; either
// one ends the session cleanly.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}

func (r *REPL) Stop() {
	r.supervisor.Cancel()
	r.rl.Close()
}

// dispatch routes an action through the reducer and keeps the store and
// reminder watcher in sync when the schedule changed.
func (r *REPL) dispatch(action planner.Action) {
	prev := r.state
	r.state = r.reducer.Reduce(r.state, action)

	if !sameSchedule(prev.Schedule, r.state.Schedule) {
		r.persistSchedule()
		if r.watcher != nil {
			r.watcher.SetSchedule(r.state.Schedule)
		}
	}
}

// sameSchedule is a cheap identity check: the reducer copies the slice on
// every schedule change, so pointer-and-length equality is enough.
func sameSchedule(a, b []planner.ScheduleItem) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// persistSchedule saves the schedule snapshot. A failed save is logged
// and swallowed; losing persistence must not break the session.
func (r *REPL) persistSchedule() {
	if r.store == nil {
		return
	}
	if err := r.store.Save(r.state.Schedule); err != nil {
		log.Error("failed to save schedule", err)
	}
}

// restoreSchedule loads the saved schedule through SetSchedule so stale
// entries are sanitized away on startup.
func (r *REPL) restoreSchedule() {
	if r.store == nil {
		return
	}
	items, err := r.store.Load()
	if err != nil {
		log.Error("failed to load saved schedule", err)
		return
	}
	if len(items) == 0 {
		return
	}
	r.dispatch(planner.SetSchedule{Items: items})
	if n := len(r.state.Schedule); n > 0 {
		r.displayInfo(fmt.Sprintf("Restored %d upcoming item(s) from the last session.", n))
	}
}

// handleMessage runs one conversation turn: dispatch the user message,
// ask the model, and fold the proposal into the schedule. Ctrl+C while
// waiting cancels the request without ending the session.
func (r *REPL) handleMessage(ctx context.Context, input string) {
	msg := planner.NewUserMessage(input, r.pending)
	r.pending = nil

	r.dispatch(planner.AddMessage{Message: msg})
	r.dispatch(planner.SetLoading{Loading: true})

	reqCtx, finish := r.supervisor.Begin(ctx)
	defer finish()

	r.spinner.Start("Planning...")

	type outcome struct {
		result *plan.Result
		err    error
	}
	resultCh := make(chan outcome, 1)
	go func() {
		result, err := r.orch.RequestSchedule(reqCtx, r.state.Messages)
		resultCh <- outcome{result, err}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	var out outcome
	select {
	case out = <-resultCh:
	case <-sigCh:
		r.supervisor.Cancel()
		out = <-resultCh
	}

	r.spinner.Stop()
	r.dispatch(planner.SetLoading{Loading: false})

	if out.err != nil {
		// Cancellation leaves the transcript and schedule exactly as
		// they were; only the loading flag was cleared above.
		r.displaySystem("Request cancelled.")
		return
	}

	result := out.result
	r.dispatch(planner.UpdateMessageStatus{ID: msg.ID, Status: planner.StatusSent})
	r.dispatch(planner.AddMessage{Message: planner.NewAssistantMessage(result.Summary)})

	switch result.Status {
	case plan.StatusSuccess:
		before := r.state.Schedule
		r.dispatch(planner.AddScheduleItems{Items: result.Items})
		added := len(r.state.Schedule) - len(before)

		if added > 0 {
			r.undoSchedule = before
			r.undoDeadline = time.Now().Add(undoWindow)
		}
		r.displayProposal(result, added, len(result.Items)-added)

	case plan.StatusUnparseable, plan.StatusFallback:
		r.dispatch(planner.SetError{Message: result.Summary})
		r.displayAssistant(result.Summary)
		if result.Note != "" {
			log.Debug("request did not produce a plan", "status", string(result.Status), "note", result.Note)
		}
	}
}
