package league

import (
	"math"
	"sort"
)

// DeriveStandings rebuilds a points table from raw match results. Only Points
// and Played can be recovered this way; the remaining columns stay zero.
// Teams keep the order in which they first appear when their points tie.
func DeriveStandings(matches []Match) []StandingRow {
	index := make(map[string]int)
	var rows []StandingRow
	row := func(name string) *StandingRow {
		i, ok := index[name]
		if !ok {
			i = len(rows)
			index[name] = i
			rows = append(rows, StandingRow{TeamName: name})
		}
		return &rows[i]
	}

	for _, m := range matches {
		homePts, awayPts := MatchPoints(m.HomeScore, m.AwayScore)
		home := row(m.HomeTeam)
		home.Points += homePts
		home.Played++
		away := row(m.AwayTeam)
		away.Points += awayPts
		away.Played++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows
}

// DerivePredictions turns a table into a points-share distribution. Each
// percentage is rounded to the nearest integer, so the total may drift from 100.
func DerivePredictions(rows []StandingRow) []Prediction {
	total := 0
	for _, r := range rows {
		total += r.Points
	}

	preds := make([]Prediction, 0, len(rows))
	for _, r := range rows {
		p := 0.0
		if total > 0 {
			p = math.Round(float64(r.Points) / float64(total) * 100)
		}
		preds = append(preds, Prediction{TeamName: r.TeamName, Percentage: p})
	}

	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Percentage > preds[j].Percentage
	})
	return preds
}

// CalculateTable builds full standings, seeding every named team so clubs that
// have not played yet still get a row. Rows are ordered by points, goal
// difference, goals scored and finally name.
func CalculateTable(teams []string, matches []Match) []StandingRow {
	type entry struct {
		row          StandingRow
		goalsAgainst int
	}
	entries := make(map[string]*entry, len(teams))
	get := func(name string) *entry {
		e, ok := entries[name]
		if !ok {
			e = &entry{row: StandingRow{TeamName: name}}
			entries[name] = e
		}
		return e
	}
	for _, t := range teams {
		get(t)
	}

	for _, m := range matches {
		home, away := get(m.HomeTeam), get(m.AwayTeam)

		home.row.Played++
		away.row.Played++

		home.row.GoalsFor += m.HomeScore
		home.goalsAgainst += m.AwayScore
		away.row.GoalsFor += m.AwayScore
		away.goalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.row.Won++
			away.row.Lost++
		case m.HomeScore < m.AwayScore:
			away.row.Won++
			home.row.Lost++
		default:
			home.row.Drawn++
			away.row.Drawn++
		}
		homePts, awayPts := MatchPoints(m.HomeScore, m.AwayScore)
		home.row.Points += homePts
		away.row.Points += awayPts
	}

	table := make([]StandingRow, 0, len(entries))
	for _, e := range entries {
		e.row.GoalDifference = e.row.GoalsFor - e.goalsAgainst
		table = append(table, e.row)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
	return table
}
