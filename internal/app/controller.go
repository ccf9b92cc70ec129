// Package app implements the console controller: every user action maps to
// one service call followed by a refresh of the dependent display regions.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/utakatalp/league-console/internal/api"
	"github.com/utakatalp/league-console/internal/league"
	"github.com/utakatalp/league-console/internal/view"
)

// Service is the league API as seen by the controller.
type Service interface {
	InitDB(ctx context.Context) error
	ListTeams(ctx context.Context) (api.TeamsPage, error)
	CreateTeam(ctx context.Context, name string, strength int) error
	UpdateTeam(ctx context.Context, id int, name string, strength int) error
	DeleteTeam(ctx context.Context, id int) error
	ClearTeams(ctx context.Context) error
	CreateLeague(ctx context.Context) (api.LeagueStatus, error)
	ClearLeague(ctx context.Context) error
	PlayWeek(ctx context.Context) (api.LeagueStatus, error)
	PlayAll(ctx context.Context) (api.PlayAllResult, error)
	Status(ctx context.Context) (api.LeagueStatus, error)
	Table(ctx context.Context) ([]league.StandingRow, error)
	Matches(ctx context.Context) ([]league.Match, error)
	Schedule(ctx context.Context) (league.Schedule, error)
	Predictions(ctx context.Context) ([]league.Prediction, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

type Controller struct {
	svc     Service
	screen  *view.Screen
	confirm Confirmer
	logger  zerolog.Logger
	seq     *sequencer

	mu    sync.Mutex
	state State
}

func New(svc Service, screen *view.Screen, confirm Confirmer, logger zerolog.Logger) *Controller {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	c := &Controller{
		svc:     svc,
		screen:  screen,
		confirm: confirm,
		logger:  logger.With().Str("component", "controller").Logger(),
		seq:     newSequencer(),
	}
	screen.SetStatus("Ready to start")
	screen.Set(view.RegionPredictions, view.NoPredictions)
	screen.Set(view.RegionWeekInfo, view.RenderWeekInfo(0, 0, 0))
	return c
}

// State returns the committed state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// update commits fn(current) and returns the new value.
func (c *Controller) update(fn func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state
}

func (c *Controller) Screen() *view.Screen { return c.screen }

// busy shows the loading indicator of b until the returned func runs.
func (c *Controller) busy(b view.Button) func() {
	c.screen.SetBusy(b, true)
	return func() { c.screen.SetBusy(b, false) }
}

func (c *Controller) succeed(status, message string) {
	c.screen.SetStatus(status)
	c.screen.ShowMessage(view.MessageSuccess, message)
}

// fail reports a failed action and hands the error back to the caller.
func (c *Controller) fail(status, what string, err error) error {
	c.logger.Error().Err(err).Msg(status)
	c.screen.SetStatus(status)
	c.screen.ShowMessage(view.MessageError, what+": "+err.Error())
	return err
}

// reject reports a locally refused action; no request is made.
func (c *Controller) reject(message string) {
	c.logger.Debug().Str("reason", message).Msg("action rejected")
	c.screen.ShowMessage(view.MessageError, message)
}

// render sets region text if t is still the newest request for it.
func (c *Controller) render(t token, text string) {
	if !c.seq.apply(t, func() { c.screen.Set(t.region, text) }) {
		c.logger.Debug().Str("region", string(t.region)).Uint64("token", t.n).Msg("dropped stale response")
	}
}

// commit applies fn to the state and renders the result, both only if t is
// still the newest request for its region.
func (c *Controller) commit(t token, fn func(State) State, draw func(State) string) {
	ok := c.seq.apply(t, func() {
		next := c.update(fn)
		c.screen.Set(t.region, draw(next))
	})
	if !ok {
		c.logger.Debug().Str("region", string(t.region)).Uint64("token", t.n).Msg("dropped stale response")
	}
}

// renderNow invalidates in-flight reads of r and writes text immediately.
func (c *Controller) renderNow(r view.Region, text string) {
	c.render(c.seq.issue(r), text)
}
