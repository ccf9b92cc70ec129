package app

import "github.com/utakatalp/league-console/internal/league"

// TeamForm holds the pending add-team input.
type TeamForm struct {
	Name     string
	Strength string
}

// State is the controller's view of the league. Values are never mutated in
// place; actions derive a new State and commit it.
type State struct {
	CurrentWeek   int
	TotalWeeks    int
	LeagueCreated bool
	// Schedule is the last fetched fixture list.
	Schedule league.Schedule
	// WeekFilter restricts the schedule view to one week; 0 shows all.
	WeekFilter int
	Form       TeamForm
}

func (s State) withProgress(current, total int) State {
	s.CurrentWeek = current
	s.TotalWeeks = total
	return s
}

func (s State) withCreated(current, total int) State {
	s = s.withProgress(current, total)
	s.LeagueCreated = true
	return s
}

func (s State) withSchedule(sched league.Schedule) State {
	s.Schedule = sched
	return s
}

func (s State) withFilter(week int) State {
	s.WeekFilter = week
	return s
}

func (s State) withForm(f TeamForm) State {
	s.Form = f
	return s
}

// cleared keeps only the pending form.
func (s State) cleared() State {
	return State{Form: s.Form}
}
