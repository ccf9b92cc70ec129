package league

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Strength bounds accepted by the league service.
const (
	MinStrength = 1
	MaxStrength = 100
)

// ErrInvalidTeam is returned when a team fails local validation.
var ErrInvalidTeam = errors.New("invalid team")

// Team represents a club registered with the league service.
type Team struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

// Match is a played fixture as returned by the service. It is never mutated.
type Match struct {
	Week      int    `json:"week"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// StandingRow holds the standings info for one team.
type StandingRow struct {
	TeamName       string `json:"team_name"`
	Points         int    `json:"points"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalDifference int    `json:"goal_difference"`
	GoalsFor       int    `json:"goals_for"`
}

type Prediction struct {
	TeamName   string  `json:"team_name"`
	Percentage float64 `json:"percentage"`
}

// Fixture is a scheduled pairing. The service encodes it with Go field names.
type Fixture struct {
	HomeTeam string `json:"HomeTeam"`
	AwayTeam string `json:"AwayTeam"`
}

// Schedule maps a week number to its fixtures.
type Schedule map[int][]Fixture

// TeamError describes why a team was rejected locally. It matches
// ErrInvalidTeam with errors.Is.
type TeamError struct {
	Reason string
}

func (e *TeamError) Error() string { return "invalid team: " + e.Reason }

func (e *TeamError) Unwrap() error { return ErrInvalidTeam }

// ValidateTeam checks a team name and the raw strength input and returns the
// trimmed name and parsed strength.
func ValidateTeam(name, strength string) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, &TeamError{Reason: "Please enter a team name"}
	}
	s, err := strconv.Atoi(strings.TrimSpace(strength))
	if err != nil || s < MinStrength || s > MaxStrength {
		return "", 0, &TeamError{Reason: fmt.Sprintf("Please enter a valid strength (%d-%d)", MinStrength, MaxStrength)}
	}
	return name, s, nil
}

// MatchPoints returns the league points each side earns: 3 for a win, 1 each
// for a draw.
func MatchPoints(homeScore, awayScore int) (home, away int) {
	switch {
	case homeScore > awayScore:
		return 3, 0
	case awayScore > homeScore:
		return 0, 3
	default:
		return 1, 1
	}
}
