package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule_EvenTeams(t *testing.T) {
	teams := []string{"A", "B", "C", "D"}
	sched := GenerateSchedule(teams)
	require.Len(t, sched, 3)
	assert.Equal(t, []string{"A", "B", "C", "D"}, teams, "input must not be rotated")

	pairs := map[[2]string]int{}
	for _, week := range sched.Weeks() {
		fixtures := sched[week]
		require.Len(t, fixtures, 2)
		seen := map[string]bool{}
		for _, f := range fixtures {
			assert.False(t, seen[f.HomeTeam] || seen[f.AwayTeam], "team plays twice in week %d", week)
			seen[f.HomeTeam], seen[f.AwayTeam] = true, true
			key := [2]string{f.HomeTeam, f.AwayTeam}
			if f.HomeTeam > f.AwayTeam {
				key = [2]string{f.AwayTeam, f.HomeTeam}
			}
			pairs[key]++
		}
	}
	assert.Len(t, pairs, 6)
	for k, n := range pairs {
		assert.Equal(t, 1, n, "pair %v", k)
	}
}

func TestGenerateSchedule_OddTeams(t *testing.T) {
	sched := GenerateSchedule([]string{"A", "B", "C"})
	require.Len(t, sched, 3)
	for _, w := range sched.Weeks() {
		assert.Len(t, sched[w], 1)
	}
}

func TestGenerateSchedule_TooFew(t *testing.T) {
	assert.Empty(t, GenerateSchedule([]string{"A"}))
}

func TestGenerateFullSeason(t *testing.T) {
	season := GenerateFullSeason([]string{"A", "B", "C", "D"})
	require.Len(t, season, 6)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, season.Weeks())
	for w := 1; w <= 3; w++ {
		for i, f := range season[w] {
			back := season[w+3][i]
			assert.Equal(t, f.HomeTeam, back.AwayTeam)
			assert.Equal(t, f.AwayTeam, back.HomeTeam)
		}
	}
}
