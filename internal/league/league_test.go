package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTeam(t *testing.T) {
	name, s, err := ValidateTeam("  Galatasaray ", "85")
	require.NoError(t, err)
	assert.Equal(t, "Galatasaray", name)
	assert.Equal(t, 85, s)

	for _, bad := range []string{"0", "101", "abc", "", "12.5", "-3"} {
		_, _, err := ValidateTeam("Team", bad)
		assert.ErrorIs(t, err, ErrInvalidTeam, "strength %q", bad)
	}

	_, _, err = ValidateTeam("   ", "50")
	assert.ErrorIs(t, err, ErrInvalidTeam)
}

func TestValidateTeam_Bounds(t *testing.T) {
	_, s, err := ValidateTeam("Low", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, s)
	_, s, err = ValidateTeam("High", "100")
	require.NoError(t, err)
	assert.Equal(t, 100, s)
}

func TestOrdinal(t *testing.T) {
	want := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 101: "101st", 111: "111th",
	}
	for n, s := range want {
		assert.Equal(t, s, Ordinal(n))
	}
}

func TestGroupByWeek(t *testing.T) {
	matches := []Match{
		{Week: 3, HomeTeam: "A", AwayTeam: "B"},
		{Week: 1, HomeTeam: "C", AwayTeam: "D"},
		{Week: 3, HomeTeam: "C", AwayTeam: "A"},
		{Week: 10, HomeTeam: "B", AwayTeam: "D"},
	}
	groups := GroupByWeek(matches)
	require.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].Week)
	assert.Equal(t, 3, groups[1].Week)
	assert.Equal(t, 10, groups[2].Week)
	require.Len(t, groups[1].Matches, 2)
	assert.Equal(t, "A", groups[1].Matches[0].HomeTeam)
	assert.Equal(t, "C", groups[1].Matches[1].HomeTeam)

	assert.Equal(t, 10, MaxWeek(matches))
	assert.Zero(t, MaxWeek(nil))
}

func TestScheduleWeeks(t *testing.T) {
	s := Schedule{10: nil, 2: nil, 1: nil}
	assert.Equal(t, []int{1, 2, 10}, s.Weeks())
}
