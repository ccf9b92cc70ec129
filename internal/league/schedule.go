package league

// GenerateSchedule returns a single round-robin schedule for the given teams
// using the circle method. Weeks are numbered from 1. With an odd number of
// teams one club sits out each week.
func GenerateSchedule(teams []string) Schedule {
	if len(teams) < 2 {
		return Schedule{}
	}

	// "" marks the bye slot
	slots := make([]string, len(teams), len(teams)+1)
	copy(slots, teams)
	if len(slots)%2 != 0 {
		slots = append(slots, "")
	}
	n := len(slots)

	sched := make(Schedule, n-1)
	for i := 0; i < n-1; i++ {
		week := make([]Fixture, 0, n/2)
		for j := 0; j < n/2; j++ {
			home, away := slots[j], slots[n-1-j]
			if home != "" && away != "" {
				week = append(week, Fixture{HomeTeam: home, AwayTeam: away})
			}
		}
		sched[i+1] = week

		// rotate every slot but the first
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}
	return sched
}

// GenerateFullSeason plays the round robin twice, swapping home and away in
// the second half.
func GenerateFullSeason(teams []string) Schedule {
	first := GenerateSchedule(teams)
	half := len(first)
	season := make(Schedule, 2*half)
	for week, fixtures := range first {
		season[week] = fixtures
		swapped := make([]Fixture, len(fixtures))
		for i, f := range fixtures {
			swapped[i] = Fixture{HomeTeam: f.AwayTeam, AwayTeam: f.HomeTeam}
		}
		season[week+half] = swapped
	}
	return season
}
