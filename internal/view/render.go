package view

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/utakatalp/league-console/internal/league"
)

// Placeholders for empty regions.
const (
	NoTeams       = "No teams available"
	NoTable       = "No league data available"
	NoMatches     = "No matches played yet"
	NoPredictions = "No predictions available"
	NoSchedule    = `No schedule available. Run "create-league" to generate fixtures first!`
)

func RenderTeams(teams []league.Team) string {
	if len(teams) == 0 {
		return NoTeams
	}
	var b strings.Builder
	for _, t := range teams {
		fmt.Fprintf(&b, "#%d %s  strength %d/100\n", t.ID, t.Name, t.Strength)
	}
	return b.String()
}

func RenderTeamCount(n int) string {
	return strconv.Itoa(n)
}

// RenderTable draws server standings.
func RenderTable(rows []league.StandingRow) string {
	return renderTable(rows, func(r league.StandingRow) []string {
		return []string{
			strconv.Itoa(r.Won), strconv.Itoa(r.Drawn), strconv.Itoa(r.Lost),
			signed(r.GoalDifference), strconv.Itoa(r.GoalsFor),
		}
	})
}

// RenderDerivedTable draws standings derived from match results. Only points
// and played are known, so the other columns show "-".
func RenderDerivedTable(rows []league.StandingRow) string {
	unknown := []string{"-", "-", "-", "-", "-"}
	return renderTable(rows, func(league.StandingRow) []string { return unknown })
}

func renderTable(rows []league.StandingRow, stats func(league.StandingRow) []string) string {
	if len(rows) == 0 {
		return NoTable
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tPts\tP\tW\tD\tL\tGD\tGF")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d. %s\t%d\t%d\t%s\n",
			i+1, r.TeamName, r.Points, r.Played, strings.Join(stats(r), "\t"))
	}
	tw.Flush()
	return b.String()
}

func signed(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// RenderMatches groups results by week, oldest first.
func RenderMatches(matches []league.Match) string {
	if len(matches) == 0 {
		return NoMatches
	}
	var b strings.Builder
	for i, wk := range league.GroupByWeek(matches) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s Week Results\n", league.Ordinal(wk.Week))
		for _, m := range wk.Matches {
			fmt.Fprintf(&b, "  %s vs %s  %d - %d\n", m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore)
		}
	}
	return b.String()
}

// RenderPredictions prints percentages with the given number of decimals:
// one for server predictions, none for locally derived ones.
func RenderPredictions(preds []league.Prediction, decimals int) string {
	if len(preds) == 0 {
		return NoPredictions
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, p := range preds {
		fmt.Fprintf(tw, "%s\t%%%s\n", p.TeamName, strconv.FormatFloat(p.Percentage, 'f', decimals, 64))
	}
	tw.Flush()
	return b.String()
}

// RenderSchedule lists upcoming fixtures. A week of 0 shows every week.
func RenderSchedule(sched league.Schedule, week int) string {
	if len(sched) == 0 {
		return NoSchedule
	}
	var b strings.Builder
	first := true
	for _, w := range sched.Weeks() {
		if week != 0 && w != week {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		fmt.Fprintf(&b, "Week %d\n", w)
		for _, f := range sched[w] {
			fmt.Fprintf(&b, "  %s vs %s  Upcoming\n", f.HomeTeam, f.AwayTeam)
		}
	}
	if first {
		return fmt.Sprintf("No fixtures in week %d", week)
	}
	return b.String()
}

// RenderWeekInfo shows progress; played is omitted when zero.
func RenderWeekInfo(current, total, played int) string {
	s := fmt.Sprintf("Week: %d / %d", current, total)
	if played > 0 {
		s += fmt.Sprintf(" (%d matches played)", played)
	}
	return s
}
