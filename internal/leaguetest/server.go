// Package leaguetest provides an in-memory league service for tests.
package leaguetest

import (
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/utakatalp/league-console/internal/league"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTeams are seeded by POST /init-db.
var DefaultTeams = []league.Team{
	{Name: "Arsenal", Strength: 90},
	{Name: "Chelsea", Strength: 85},
	{Name: "Liverpool", Strength: 88},
	{Name: "Manchester City", Strength: 92},
}

// Scorer decides the result of a fixture.
type Scorer func(week int, home, away league.Team) (homeGoals, awayGoals int)

// Server mimics the league service's HTTP API under /api.
type Server struct {
	router *mux.Router

	mu          sync.Mutex
	nextID      int
	teams       []league.Team
	created     bool
	schedule    league.Schedule
	currentWeek int
	matches     []league.Match
	scorer      Scorer

	failures map[string]int
	gates    map[string]*gate
	requests map[string]int
}

type gate struct {
	reached chan struct{}
	release chan struct{}
}

func NewServer() *Server {
	s := &Server{
		nextID:   1,
		failures: make(map[string]int),
		gates:    make(map[string]*gate),
		requests: make(map[string]int),
	}
	s.scorer = StrengthScorer(1)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.intercept)
	api.HandleFunc("/init-db", s.initDB).Methods(http.MethodPost)
	api.HandleFunc("/teams", s.listTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.addTeam).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}", s.updateTeam).Methods(http.MethodPut)
	api.HandleFunc("/teams/{id:[0-9]+}", s.deleteTeam).Methods(http.MethodDelete)
	api.HandleFunc("/clear-teams", s.clearTeams).Methods(http.MethodDelete)
	api.HandleFunc("/league", s.createLeague).Methods(http.MethodPost)
	api.HandleFunc("/league", s.clearLeague).Methods(http.MethodDelete)
	api.HandleFunc("/league/clear", s.clearLeague).Methods(http.MethodDelete)
	api.HandleFunc("/league/play-week", s.playWeek).Methods(http.MethodPost)
	api.HandleFunc("/league/play-all", s.playAll).Methods(http.MethodPost)
	api.HandleFunc("/league/status", s.status).Methods(http.MethodGet)
	api.HandleFunc("/league/table", s.table).Methods(http.MethodGet)
	api.HandleFunc("/league/matches", s.listMatches).Methods(http.MethodGet)
	api.HandleFunc("/league/schedule", s.getSchedule).Methods(http.MethodGet)
	api.HandleFunc("/league/predictions", s.predictions).Methods(http.MethodGet)
	s.router = r
	return s
}

// Start serves a new fake on an httptest server and returns it with the API
// base URL. The server is closed when the test ends.
func Start(t testing.TB) (*Server, string) {
	t.Helper()
	s := NewServer()
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts.URL + "/api"
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func key(method, path string) string {
	return method + " " + path
}

// Fail makes every request to method+path answer with status until cleared
// with Fail(method, path, 0).
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, key(method, path))
		return
	}
	s.failures[key(method, path)] = status
}

// Hold delays the next response to method+path until release is called.
// The response body is computed first; reached is closed once it has been.
func (s *Server) Hold(method, path string) (reached <-chan struct{}, release func()) {
	g := &gate{reached: make(chan struct{}), release: make(chan struct{})}
	s.mu.Lock()
	s.gates[key(method, path)] = g
	s.mu.Unlock()
	var once sync.Once
	return g.reached, func() { once.Do(func() { close(g.release) }) }
}

// Requests returns how many requests hit method+path.
func (s *Server) Requests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key(method, path)]
}

// SetScorer replaces the result generator.
func (s *Server) SetScorer(fn Scorer) {
	s.mu.Lock()
	s.scorer = fn
	s.mu.Unlock()
}

// SeedTeams adds teams directly.
func (s *Server) SeedTeams(teams ...league.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range teams {
		s.addTeamLocked(t.Name, t.Strength)
	}
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		k := key(r.Method, strings.TrimPrefix(r.URL.Path, "/api"))

		s.mu.Lock()
		s.requests[k]++
		status := s.failures[k]
		g := s.gates[k]
		delete(s.gates, k)
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, "injected failure", status)
			return
		}
		if g == nil {
			next.ServeHTTP(w, r)
			return
		}

		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, r)
		close(g.reached)
		<-g.release
		for h, v := range rec.Header() {
			w.Header()[h] = v
		}
		w.WriteHeader(rec.Code)
		_, _ = w.Write(rec.Body.Bytes())
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status, message string) {
	writeJSON(w, map[string]string{"status": status, "message": message})
}

// POST /api/init-db
func (s *Server) initDB(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	for _, t := range DefaultTeams {
		s.addTeamLocked(t.Name, t.Strength)
	}
	s.mu.Unlock()
	writeStatus(w, "Database initialized successfully", "Default teams have been added to the database")
}

func (s *Server) addTeamLocked(name string, strength int) {
	s.teams = append(s.teams, league.Team{ID: s.nextID, Name: name, Strength: strength})
	s.nextID++
}

// GET /api/teams
func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	teams := append([]league.Team{}, s.teams...)
	s.mu.Unlock()
	writeJSON(w, map[string]any{"teams": teams, "count": len(teams)})
}

type teamBody struct {
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

func decodeTeam(w http.ResponseWriter, r *http.Request) (teamBody, bool) {
	var body teamBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return body, false
	}
	if body.Name == "" {
		http.Error(w, "Team name is required", http.StatusBadRequest)
		return body, false
	}
	if body.Strength < league.MinStrength || body.Strength > league.MaxStrength {
		http.Error(w, "Strength must be between 1 and 100", http.StatusBadRequest)
		return body, false
	}
	return body, true
}

// POST /api/teams
func (s *Server) addTeam(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeTeam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.addTeamLocked(body.Name, body.Strength)
	s.mu.Unlock()
	writeStatus(w, "Team added successfully", "Team "+body.Name+" has been added")
}

func (s *Server) teamIndexLocked(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	for i, t := range s.teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// PUT /api/teams/{id}
func (s *Server) updateTeam(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeTeam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndexLocked(r)
	if i < 0 {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}
	s.teams[i].Name = body.Name
	s.teams[i].Strength = body.Strength
	writeStatus(w, "Team updated successfully", "Team "+body.Name+" has been updated")
}

// DELETE /api/teams/{id}
func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndexLocked(r)
	if i < 0 {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}
	s.teams = append(s.teams[:i], s.teams[i+1:]...)
	writeStatus(w, "Team deleted successfully", "")
}

// DELETE /api/clear-teams
func (s *Server) clearTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.teams = nil
	s.mu.Unlock()
	writeStatus(w, "Teams cleared successfully", "All teams have been removed from the database")
}

func (s *Server) statusLocked() map[string]any {
	status := "In Progress"
	if s.currentWeek >= len(s.schedule) {
		status = "Season Complete"
	}
	return map[string]any{
		"current_week": s.currentWeek,
		"total_weeks":  len(s.schedule),
		"status":       status,
	}
}

// POST /api/league
func (s *Server) createLeague(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.teams) < 2 {
		http.Error(w, "At least 2 teams required in database", http.StatusBadRequest)
		return
	}
	names := make([]string, len(s.teams))
	for i, t := range s.teams {
		names[i] = t.Name
	}
	s.schedule = league.GenerateFullSeason(names)
	s.created = true
	s.currentWeek = 0
	s.matches = nil
	resp := s.statusLocked()
	resp["status"] = "League created successfully"
	writeJSON(w, resp)
}

// DELETE /api/league/clear
func (s *Server) clearLeague(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		http.Error(w, "No league created yet. Please create a league first.", http.StatusBadRequest)
		return
	}
	s.created = false
	s.schedule = nil
	s.currentWeek = 0
	s.matches = nil
	s.teams = nil
	writeJSON(w, map[string]any{"current_week": 0, "total_weeks": 0, "status": "League cleared successfully"})
}

func (s *Server) requireLeague(w http.ResponseWriter) bool {
	if !s.created {
		http.Error(w, "No league created yet. Please create a league first.", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) playWeekLocked() []league.Match {
	s.currentWeek++
	byName := make(map[string]league.Team, len(s.teams))
	for _, t := range s.teams {
		byName[t.Name] = t
	}
	var played []league.Match
	for _, f := range s.schedule[s.currentWeek] {
		hg, ag := s.scorer(s.currentWeek, byName[f.HomeTeam], byName[f.AwayTeam])
		played = append(played, league.Match{
			Week:      s.currentWeek,
			HomeTeam:  f.HomeTeam,
			AwayTeam:  f.AwayTeam,
			HomeScore: hg,
			AwayScore: ag,
		})
	}
	s.matches = append(s.matches, played...)
	return played
}

// POST /api/league/play-week
func (s *Server) playWeek(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireLeague(w) {
		return
	}
	if s.currentWeek >= len(s.schedule) {
		http.Error(w, "All weeks have already been played", http.StatusBadRequest)
		return
	}
	s.playWeekLocked()
	writeJSON(w, s.statusLocked())
}

// POST /api/league/play-all
func (s *Server) playAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireLeague(w) {
		return
	}
	byWeek := make(map[int][]league.Match)
	total := 0
	for s.currentWeek < len(s.schedule) {
		played := s.playWeekLocked()
		byWeek[s.currentWeek] = played
		total += len(played)
	}
	writeJSON(w, map[string]any{
		"status":          "All weeks played successfully",
		"total_matches":   total,
		"matches_by_week": byWeek,
	})
}

// GET /api/league/status
func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		http.Error(w, "League not initialized", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.statusLocked())
}

func (s *Server) tableLocked() []league.StandingRow {
	names := make([]string, len(s.teams))
	for i, t := range s.teams {
		names[i] = t.Name
	}
	return league.CalculateTable(names, s.matches)
}

// GET /api/league/table
func (s *Server) table(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireLeague(w) {
		return
	}
	writeJSON(w, s.tableLocked())
}

// GET /api/league/matches
func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireLeague(w) {
		return
	}
	matches := append([]league.Match{}, s.matches...)
	writeJSON(w, matches)
}

// GET /api/league/schedule
func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireLeague(w) {
		return
	}
	writeJSON(w, s.schedule)
}

// GET /api/league/predictions
func (s *Server) predictions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireLeague(w) {
		return
	}
	table := s.tableLocked()
	total := 0
	for _, row := range table {
		total += row.Points
	}
	preds := make([]league.Prediction, 0, len(table))
	for _, row := range table {
		p := 100.0 / float64(len(table))
		if total > 0 {
			p = float64(row.Points) / float64(total) * 100
		}
		preds = append(preds, league.Prediction{TeamName: row.TeamName, Percentage: math.Round(p*10) / 10})
	}
	sort.SliceStable(preds, func(i, j int) bool { return preds[i].Percentage > preds[j].Percentage })
	writeJSON(w, preds)
}

// StrengthScorer samples goals from Poisson distributions whose means are
// split by relative strength, averaging about three goals a match.
func StrengthScorer(seed int64) Scorer {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func(week int, home, away league.Team) (int, int) {
		mu.Lock()
		defer mu.Unlock()
		hs, as := float64(home.Strength), float64(away.Strength)
		if hs+as <= 0 {
			hs, as = 1, 1
		}
		total := hs + as
		return samplePoisson(rng, hs/total*3.0), samplePoisson(rng, as/total*3.0)
	}
}

// FixedScorer returns the same result for every fixture.
func FixedScorer(homeGoals, awayGoals int) Scorer {
	return func(int, league.Team, league.Team) (int, int) { return homeGoals, awayGoals }
}

func samplePoisson(rng *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	p := 1.0
	k := 0
	for p > l {
		k++
		p *= rng.Float64()
	}
	return k - 1
}
