package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPoints(t *testing.T) {
	cases := []struct {
		home, away         int
		wantHome, wantAway int
	}{
		{2, 1, 3, 0},
		{0, 3, 0, 3},
		{1, 1, 1, 1},
		{0, 0, 1, 1},
	}
	for _, c := range cases {
		h, a := MatchPoints(c.home, c.away)
		assert.Equal(t, c.wantHome, h, "%d-%d home", c.home, c.away)
		assert.Equal(t, c.wantAway, a, "%d-%d away", c.home, c.away)
	}
}

func TestDeriveStandings(t *testing.T) {
	matches := []Match{
		{Week: 1, HomeTeam: "A", AwayTeam: "B", HomeScore: 2, AwayScore: 1},
		{Week: 2, HomeTeam: "B", AwayTeam: "A", HomeScore: 0, AwayScore: 0},
	}

	rows := DeriveStandings(matches)
	require.Len(t, rows, 2)
	assert.Equal(t, StandingRow{TeamName: "A", Points: 4, Played: 2}, rows[0])
	assert.Equal(t, StandingRow{TeamName: "B", Points: 1, Played: 2}, rows[1])
}

func TestDeriveStandings_FirstMatchOnly(t *testing.T) {
	rows := DeriveStandings([]Match{{Week: 1, HomeTeam: "A", AwayTeam: "B", HomeScore: 2, AwayScore: 1}})
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 1, rows[0].Played)
	assert.Equal(t, 0, rows[1].Points)
}

func TestDeriveStandings_TiesKeepFirstAppearance(t *testing.T) {
	matches := []Match{
		{Week: 1, HomeTeam: "Zeta", AwayTeam: "Alpha", HomeScore: 1, AwayScore: 1},
		{Week: 1, HomeTeam: "Mid", AwayTeam: "Low", HomeScore: 0, AwayScore: 2},
	}
	rows := DeriveStandings(matches)
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.TeamName
	}
	assert.Equal(t, []string{"Low", "Zeta", "Alpha", "Mid"}, names)
}

func TestDeriveStandings_Empty(t *testing.T) {
	assert.Empty(t, DeriveStandings(nil))
}

func TestDerivePredictions(t *testing.T) {
	rows := []StandingRow{
		{TeamName: "C", Points: 1},
		{TeamName: "A", Points: 6},
		{TeamName: "B", Points: 3},
	}
	preds := DerivePredictions(rows)
	assert.Equal(t, []Prediction{
		{TeamName: "A", Percentage: 60},
		{TeamName: "B", Percentage: 30},
		{TeamName: "C", Percentage: 10},
	}, preds)
}

func TestDerivePredictions_Rounding(t *testing.T) {
	preds := DerivePredictions([]StandingRow{
		{TeamName: "A", Points: 1},
		{TeamName: "B", Points: 1},
		{TeamName: "C", Points: 1},
	})
	for _, p := range preds {
		assert.Equal(t, 33.0, p.Percentage)
	}
}

func TestDerivePredictions_NoPoints(t *testing.T) {
	preds := DerivePredictions([]StandingRow{{TeamName: "A"}, {TeamName: "B"}})
	require.Len(t, preds, 2)
	assert.Zero(t, preds[0].Percentage)
	assert.Zero(t, preds[1].Percentage)
	assert.Equal(t, "A", preds[0].TeamName)
}

func TestCalculateTable(t *testing.T) {
	matches := []Match{
		{Week: 1, HomeTeam: "ARS", AwayTeam: "CHE", HomeScore: 2, AwayScore: 1},
		{Week: 1, HomeTeam: "LIV", AwayTeam: "MCI", HomeScore: 3, AwayScore: 0},
		{Week: 2, HomeTeam: "CHE", AwayTeam: "LIV", HomeScore: 1, AwayScore: 1},
		{Week: 2, HomeTeam: "MCI", AwayTeam: "ARS", HomeScore: 2, AwayScore: 0},
	}
	table := CalculateTable([]string{"ARS", "CHE", "LIV", "MCI", "TOT"}, matches)
	require.Len(t, table, 5)

	assert.Equal(t, StandingRow{TeamName: "LIV", Points: 4, Played: 2, Won: 1, Drawn: 1, GoalDifference: 3, GoalsFor: 4}, table[0])
	// ARS and MCI are level on points, goal difference and goals, so name decides
	assert.Equal(t, "ARS", table[1].TeamName)
	assert.Equal(t, "MCI", table[2].TeamName)
	assert.Equal(t, -1, table[1].GoalDifference)
	assert.Equal(t, "CHE", table[3].TeamName)
	assert.Equal(t, StandingRow{TeamName: "TOT"}, table[4])
}
