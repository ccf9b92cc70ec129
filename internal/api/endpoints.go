package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/utakatalp/league-console/internal/league"
)

// TeamsPage is the body of GET /teams.
type TeamsPage struct {
	Teams []league.Team `json:"teams"`
	Count int           `json:"count"`
}

// LeagueStatus is returned by league creation, week play and status polling.
type LeagueStatus struct {
	CurrentWeek int    `json:"current_week"`
	TotalWeeks  int    `json:"total_weeks"`
	Status      string `json:"status,omitempty"`
}

// Complete reports whether every week has been played.
func (s LeagueStatus) Complete() bool {
	return s.TotalWeeks > 0 && s.CurrentWeek >= s.TotalWeeks
}

// PlayAllResult is the body of POST /league/play-all.
type PlayAllResult struct {
	Status        string                 `json:"status"`
	TotalMatches  int                    `json:"total_matches"`
	MatchesByWeek map[int][]league.Match `json:"matches_by_week"`
}

type teamRequest struct {
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

// POST /init-db
func (c *Client) InitDB(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/init-db", nil, nil)
}

// GET /teams
func (c *Client) ListTeams(ctx context.Context) (TeamsPage, error) {
	var page TeamsPage
	err := c.do(ctx, http.MethodGet, "/teams", nil, &page)
	return page, err
}

// POST /teams
func (c *Client) CreateTeam(ctx context.Context, name string, strength int) error {
	return c.do(ctx, http.MethodPost, "/teams", teamRequest{Name: name, Strength: strength}, nil)
}

// PUT /teams/{id}
func (c *Client) UpdateTeam(ctx context.Context, id int, name string, strength int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/teams/%d", id), teamRequest{Name: name, Strength: strength}, nil)
}

// DELETE /teams/{id}
func (c *Client) DeleteTeam(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d", id), nil, nil)
}

// DELETE /clear-teams
func (c *Client) ClearTeams(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/clear-teams", nil, nil)
}

// POST /league
func (c *Client) CreateLeague(ctx context.Context) (LeagueStatus, error) {
	var st LeagueStatus
	err := c.do(ctx, http.MethodPost, "/league", []league.Team{}, &st)
	return st, err
}

// DELETE /league/clear
func (c *Client) ClearLeague(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/league/clear", nil, nil)
}

// POST /league/play-week
func (c *Client) PlayWeek(ctx context.Context) (LeagueStatus, error) {
	var st LeagueStatus
	err := c.do(ctx, http.MethodPost, "/league/play-week", nil, &st)
	return st, err
}

// POST /league/play-all
func (c *Client) PlayAll(ctx context.Context) (PlayAllResult, error) {
	var res PlayAllResult
	err := c.do(ctx, http.MethodPost, "/league/play-all", nil, &res)
	return res, err
}

// GET /league/status
func (c *Client) Status(ctx context.Context) (LeagueStatus, error) {
	var st LeagueStatus
	err := c.do(ctx, http.MethodGet, "/league/status", nil, &st)
	return st, err
}

// GET /league/table
func (c *Client) Table(ctx context.Context) ([]league.StandingRow, error) {
	var rows []league.StandingRow
	err := c.do(ctx, http.MethodGet, "/league/table", nil, &rows)
	return rows, err
}

// GET /league/matches
func (c *Client) Matches(ctx context.Context) ([]league.Match, error) {
	var matches []league.Match
	err := c.do(ctx, http.MethodGet, "/league/matches", nil, &matches)
	return matches, err
}

// GET /league/schedule
func (c *Client) Schedule(ctx context.Context) (league.Schedule, error) {
	var sched league.Schedule
	err := c.do(ctx, http.MethodGet, "/league/schedule", nil, &sched)
	return sched, err
}

// GET /league/predictions
func (c *Client) Predictions(ctx context.Context) ([]league.Prediction, error) {
	var preds []league.Prediction
	err := c.do(ctx, http.MethodGet, "/league/predictions", nil, &preds)
	return preds, err
}
