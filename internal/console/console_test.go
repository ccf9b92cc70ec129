package console

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-console/internal/api"
	"github.com/utakatalp/league-console/internal/leaguetest"
	"github.com/utakatalp/league-console/internal/view"
)

func run(t *testing.T, script string) (*Console, *leaguetest.Server, string) {
	t.Helper()
	srv, base := leaguetest.Start(t)
	srv.SetScorer(leaguetest.FixedScorer(1, 1))
	var out bytes.Buffer
	c := New(api.NewClient(api.Config{BaseURL: base}), strings.NewReader(script), &out, zerolog.Nop())
	require.NoError(t, c.Run(context.Background()))
	return c, srv, out.String()
}

func TestRun_StartsWithTeams(t *testing.T) {
	_, srv, out := run(t, "")
	assert.Equal(t, 1, srv.Requests(http.MethodGet, "/teams"))
	assert.Contains(t, out, "== teams ==\n"+view.NoTeams)
	assert.Contains(t, out, "== team-count ==\n0")
}

func TestRun_SeasonFlow(t *testing.T) {
	script := strings.Join([]string{
		"init-db",
		"add 80 Real Betis",
		"create-league",
		"next-week",
		"play-all",
		"quit",
		"next-week",
	}, "\n")
	c, srv, out := run(t, script)

	assert.Equal(t, 3, srv.Requests(http.MethodGet, "/teams"))
	assert.Equal(t, 1, srv.Requests(http.MethodPost, "/league/play-week"), "commands after quit must not run")
	assert.Contains(t, out, "Team Real Betis added successfully!")

	st := c.Controller().State()
	assert.True(t, st.LeagueCreated)
	assert.Equal(t, 10, st.TotalWeeks)
	assert.Equal(t, 10, st.CurrentWeek)
	assert.Contains(t, c.Controller().Screen().Get(view.RegionWeekInfo), "Week: 10 / 10")
}

func TestRun_FormCommands(t *testing.T) {
	c, srv, _ := run(t, "name Aston Villa\nstrength 101\nadd\nstrength 77\nadd\n")
	assert.Equal(t, 1, srv.Requests(http.MethodPost, "/teams"))
	assert.Equal(t, "1", c.Controller().Screen().Get(view.RegionTeamCount))
	assert.Contains(t, c.Controller().Screen().Get(view.RegionTeams), "Aston Villa  strength 77/100")
}

func TestRun_ConfirmationReadsInput(t *testing.T) {
	_, srv, out := run(t, "init-db\ndelete 1\nn\ndelete 1\ny\n")
	assert.Contains(t, out, "Are you sure you want to delete this team? [y/N]: ")
	assert.Equal(t, 1, srv.Requests(http.MethodDelete, "/teams/1"))
}

func TestRun_BadArguments(t *testing.T) {
	c, srv, out := run(t, "delete abc\nedit 1 50\nfilter soon\nwatch 10ms\nfly\n")
	assert.Zero(t, srv.Requests(http.MethodDelete, "/teams/abc"))
	assert.Contains(t, out, `Invalid team id "abc"`)
	assert.Contains(t, out, "Usage: edit <id> <strength> <name...>")
	assert.Contains(t, out, `Invalid week "soon"`)
	assert.Contains(t, out, `Invalid interval "10ms"`)
	assert.Contains(t, out, `Unknown command "fly"`)
	assert.False(t, c.Watching())
}

func TestRun_ScheduleFilter(t *testing.T) {
	c, _, _ := run(t, "init-db\ncreate-league\nschedule\nfilter 2\n")
	assert.Equal(t, 2, c.Controller().State().WeekFilter)
	assert.True(t, strings.HasPrefix(c.Controller().Screen().Get(view.RegionSchedule), "Week 2\n"))
}

func TestExec_WatchAndUnwatch(t *testing.T) {
	_, base := leaguetest.Start(t)
	var out bytes.Buffer
	c := New(api.NewClient(api.Config{BaseURL: base}), strings.NewReader(""), &out, zerolog.Nop())
	ctx := context.Background()

	assert.False(t, c.Exec(ctx, "watch 30s"))
	assert.True(t, c.Watching())
	msg, ok := c.Controller().Screen().Message()
	require.True(t, ok)
	assert.Equal(t, "Auto-refresh every 30s", msg.Text)

	assert.False(t, c.Exec(ctx, "unwatch"))
	assert.False(t, c.Watching())
	assert.True(t, c.Exec(ctx, "exit"))
}

func TestRun_ReturnsWhenContextIsCancelled(t *testing.T) {
	_, base := leaguetest.Start(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	c := New(api.NewClient(api.Config{BaseURL: base}), pr, io.Discard, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	_, err := io.WriteString(pw, "teams\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel while waiting for input")
	}
}

func TestWatch_SkipsTicksWhileRefreshRuns(t *testing.T) {
	srv, base := leaguetest.Start(t)
	reached, release := srv.Hold(http.MethodGet, "/league/status")
	defer release()

	pr, pw := io.Pipe()
	defer pw.Close()
	c := New(api.NewClient(api.Config{BaseURL: base}), pr, io.Discard, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	_, err := io.WriteString(pw, "watch 1s\n")
	require.NoError(t, err)

	select {
	case <-reached:
	case <-time.After(5 * time.Second):
		t.Fatal("auto-refresh never reached the service")
	}
	// at least two more ticks fall due while the first refresh is held
	time.Sleep(2500 * time.Millisecond)
	assert.Equal(t, 1, srv.Requests(http.MethodGet, "/league/status"))

	cancel()
	require.NoError(t, <-done)
}
