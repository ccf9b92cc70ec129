package league

import (
	"sort"
	"strconv"
)

// Ordinal formats n with its English suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	j, k := n%10, n%100
	switch {
	case j == 1 && k != 11:
		return "st"
	case j == 2 && k != 12:
		return "nd"
	case j == 3 && k != 13:
		return "rd"
	}
	return "th"
}

// WeekResults is one week's played matches.
type WeekResults struct {
	Week    int
	Matches []Match
}

// GroupByWeek buckets matches by week, ascending. Matches keep their input
// order inside a week.
func GroupByWeek(matches []Match) []WeekResults {
	byWeek := make(map[int][]Match)
	for _, m := range matches {
		byWeek[m.Week] = append(byWeek[m.Week], m)
	}
	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]WeekResults, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, WeekResults{Week: w, Matches: byWeek[w]})
	}
	return out
}

// MaxWeek returns the highest week among matches, or 0 for none.
func MaxWeek(matches []Match) int {
	last := 0
	for _, m := range matches {
		if m.Week > last {
			last = m.Week
		}
	}
	return last
}

// MaxWeekKey returns the highest week key of a play-all response.
func MaxWeekKey(byWeek map[int][]Match) int {
	last := 0
	for w := range byWeek {
		if w > last {
			last = w
		}
	}
	return last
}

// Weeks returns the schedule's week numbers in ascending order.
func (s Schedule) Weeks() []int {
	weeks := make([]int, 0, len(s))
	for w := range s {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}
