package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/utakatalp/league-console/internal/league"
	"github.com/utakatalp/league-console/internal/view"
)

// CreateLeague generates fixtures on the service and loads the new league.
func (c *Controller) CreateLeague(ctx context.Context) error {
	defer c.busy(view.ButtonCreateLeague)()
	c.screen.SetStatus("Creating league...")

	st, err := c.svc.CreateLeague(ctx)
	if err != nil {
		return c.fail("Failed to create league", "Failed to create league", err)
	}
	c.update(func(s State) State { return s.withCreated(st.CurrentWeek, st.TotalWeeks) })
	c.succeed("League created successfully!", "League created successfully!")
	c.RefreshLeague(ctx)
	return nil
}

// PlayNextWeek simulates one week.
func (c *Controller) PlayNextWeek(ctx context.Context) error {
	if !c.State().LeagueCreated {
		c.reject("Please create a league first")
		return ErrNoLeague
	}

	defer c.busy(view.ButtonNextWeek)()
	c.screen.SetStatus("Playing next week...")

	st, err := c.svc.PlayWeek(ctx)
	if err != nil {
		return c.fail("Failed to play week", "Failed to play week", err)
	}
	next := c.update(func(s State) State {
		total := s.TotalWeeks
		if st.TotalWeeks > 0 {
			total = st.TotalWeeks
		}
		return s.withProgress(st.CurrentWeek, total)
	})
	c.succeed("Week played successfully!", fmt.Sprintf("Week %d played successfully!", next.CurrentWeek))
	if st.Complete() {
		c.screen.SetStatus("Season complete!")
	}
	c.RefreshLeague(ctx)
	return nil
}

// PlayAllWeeks simulates every remaining week.
func (c *Controller) PlayAllWeeks(ctx context.Context) error {
	if !c.State().LeagueCreated {
		c.reject("Please create a league first")
		return ErrNoLeague
	}

	defer c.busy(view.ButtonPlayAll)()
	c.screen.SetStatus("Playing all remaining weeks...")

	res, err := c.svc.PlayAll(ctx)
	if err != nil {
		return c.fail("Failed to play all weeks", "Failed to play all weeks", err)
	}
	if len(res.MatchesByWeek) > 0 {
		last := league.MaxWeekKey(res.MatchesByWeek)
		c.update(func(s State) State { return s.withProgress(last, s.TotalWeeks) })
	}
	c.succeed("All weeks played successfully!", "All remaining weeks played successfully!")
	c.RefreshLeague(ctx)
	return nil
}

// ClearLeague deletes the league and its teams after confirmation and resets
// every view.
func (c *Controller) ClearLeague(ctx context.Context) error {
	if !c.confirm.Confirm("Are you sure you want to clear the league? This will delete all data including teams.") {
		return nil
	}

	defer c.busy(view.ButtonClearLeague)()
	c.screen.SetStatus("Clearing league...")

	if err := c.svc.ClearLeague(ctx); err != nil {
		return c.fail("Failed to clear league", "Failed to clear league", err)
	}

	// Invalidate in-flight reads before resetting so none of them can
	// commit the old counters afterwards.
	placeholders := map[view.Region]string{
		view.RegionTable:       view.RenderTable(nil),
		view.RegionMatches:     view.RenderMatches(nil),
		view.RegionTeams:       view.RenderTeams(nil),
		view.RegionTeamCount:   view.RenderTeamCount(0),
		view.RegionWeekInfo:    view.RenderWeekInfo(0, 0, 0),
		view.RegionPredictions: view.RenderPredictions(nil, 0),
		view.RegionSchedule:    view.RenderSchedule(nil, 0),
	}
	toks := make(map[view.Region]token, len(placeholders))
	for r := range placeholders {
		toks[r] = c.seq.issue(r)
	}
	c.update(State.cleared)
	c.succeed("League cleared successfully!", "League cleared successfully! All teams and data have been removed.")
	for r, text := range placeholders {
		c.render(toks[r], text)
	}
	return nil
}

// RefreshLeague reloads status, standings, matches and predictions in that
// order. Each read fails on its own; when the standings or predictions reads
// fail but matches arrived, those views are derived from the matches instead.
func (c *Controller) RefreshLeague(ctx context.Context) {
	statusTok := c.seq.issue(view.RegionWeekInfo)
	tableTok := c.seq.issue(view.RegionTable)
	matchesTok := c.seq.issue(view.RegionMatches)
	predTok := c.seq.issue(view.RegionPredictions)

	var failed []string

	if st, err := c.svc.Status(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("load league status")
		failed = append(failed, "status")
	} else {
		c.commit(statusTok,
			func(s State) State { return s.withProgress(st.CurrentWeek, st.TotalWeeks) },
			func(s State) string { return view.RenderWeekInfo(s.CurrentWeek, s.TotalWeeks, 0) })
	}

	rows, tableErr := c.svc.Table(ctx)
	if tableErr != nil {
		c.logger.Warn().Err(tableErr).Msg("load league table")
	} else {
		c.render(tableTok, view.RenderTable(rows))
	}

	matches, matchesErr := c.svc.Matches(ctx)
	if matchesErr != nil {
		c.logger.Warn().Err(matchesErr).Msg("load matches")
		failed = append(failed, "matches")
	} else {
		c.render(matchesTok, view.RenderMatches(matches))
		c.renderWeekInfoFromMatches(statusTok, matches)
		if tableErr != nil {
			c.render(tableTok, view.RenderDerivedTable(league.DeriveStandings(matches)))
		}
	}
	if tableErr != nil {
		failed = append(failed, "table")
	}

	preds, err := c.svc.Predictions(ctx)
	switch {
	case err == nil:
		c.render(predTok, view.RenderPredictions(preds, 1))
	case matchesErr == nil:
		c.logger.Warn().Err(err).Msg("load predictions, deriving from matches")
		c.render(predTok, view.RenderPredictions(league.DerivePredictions(league.DeriveStandings(matches)), 0))
		failed = append(failed, "predictions")
	default:
		c.logger.Warn().Err(err).Msg("load predictions")
		c.render(predTok, view.RenderPredictions(nil, 0))
		failed = append(failed, "predictions")
	}

	// A refresh overtaken by a newer one or by a reset reports nothing.
	if len(failed) > 0 && c.seq.current(statusTok, tableTok, matchesTok, predTok) {
		c.screen.SetStatus("Some league data could not be refreshed")
		c.screen.ShowMessage(view.MessageWarning, "Could not refresh: "+strings.Join(failed, ", "))
	}
}

// renderWeekInfoFromMatches shows the latest played week, falling back to the
// committed current week when nothing has been played.
func (c *Controller) renderWeekInfoFromMatches(t token, matches []league.Match) {
	st := c.State()
	current := league.MaxWeek(matches)
	if current == 0 {
		current = st.CurrentWeek
	}
	c.render(t, view.RenderWeekInfo(current, st.TotalWeeks, len(matches)))
}

// LoadSchedule fetches the fixture list and renders it with the active filter.
func (c *Controller) LoadSchedule(ctx context.Context) error {
	defer c.busy(view.ButtonLoadSchedule)()
	c.screen.SetStatus("Loading match schedule...")
	tok := c.seq.issue(view.RegionSchedule)

	sched, err := c.svc.Schedule(ctx)
	if err != nil {
		return c.fail("Failed to load match schedule", "Failed to load match schedule", err)
	}
	if len(sched) == 0 {
		c.screen.ShowMessage(view.MessageWarning, `No schedule available. Please run "create-league" first to generate fixtures!`)
		c.render(tok, view.RenderSchedule(nil, 0))
		return nil
	}

	next := c.update(func(s State) State { return s.withSchedule(sched) })
	c.succeed("Match schedule loaded!", "Match schedule loaded successfully!")
	c.render(tok, view.RenderSchedule(next.Schedule, next.WeekFilter))
	return nil
}

// FilterSchedule narrows the schedule view to week, or shows all weeks for 0.
// It re-renders the last fetched schedule without a request.
func (c *Controller) FilterSchedule(week int) {
	if week < 0 {
		week = 0
	}
	next := c.update(func(s State) State { return s.withFilter(week) })
	c.renderNow(view.RegionSchedule, view.RenderSchedule(next.Schedule, next.WeekFilter))
}
