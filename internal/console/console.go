// Package console binds typed commands to controller actions and prints the
// screen after each one.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/utakatalp/league-console/internal/app"
	"github.com/utakatalp/league-console/internal/view"
)

// MinWatchInterval is the shortest accepted auto-refresh period.
const MinWatchInterval = time.Second

const helpText = `Commands:
  init-db                      seed default teams
  teams                        reload the team list
  name <text> | strength <n>   fill the add-team form
  add [<strength> <name...>]   add a team (from the form when no arguments)
  edit <id> <strength> <name...>
  delete <id>
  clear-teams
  create-league
  next-week
  play-all
  clear-league
  schedule                     load fixtures
  filter <week|all>            filter the schedule view
  refresh                      reload status, table, matches, predictions
  watch <interval>             refresh periodically, e.g. "watch 10s"
  unwatch
  show | dismiss | help | quit`

type Console struct {
	ctrl   *app.Controller
	logger zerolog.Logger

	// Input is scanned on its own goroutine so a blocked read never keeps
	// Run from noticing cancellation.
	in       *bufio.Scanner
	lines    chan string
	readErr  error
	readOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once

	outMu sync.Mutex
	out   io.Writer

	cron    *cron.Cron
	watchID cron.EntryID
}

// New builds a console and its controller. Confirmation prompts are answered
// from the same input stream as commands.
func New(svc app.Service, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	c := &Console{
		in:     bufio.NewScanner(in),
		lines:  make(chan string),
		done:   make(chan struct{}),
		out:    out,
		logger: logger.With().Str("component", "console").Logger(),
	}
	// A tick that finds the previous refresh still running is skipped.
	cl := cronLogger{c.logger}
	c.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl)))
	c.ctrl = app.New(svc, view.NewScreen(), c, logger)
	return c
}

func (c *Console) Controller() *app.Controller { return c.ctrl }

func (c *Console) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) show() {
	c.printf("%s", c.ctrl.Screen().Snapshot())
}

// Confirm prints prompt and reads a y/N answer.
func (c *Console) Confirm(prompt string) bool {
	c.printf("%s [y/N]: ", prompt)
	line, ok := c.readLine()
	if !ok {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (c *Console) scan() {
	defer close(c.lines)
	for c.in.Scan() {
		select {
		case c.lines <- c.in.Text():
		case <-c.done:
			return
		}
	}
	c.readErr = c.in.Err()
}

// readLine returns the next input line, or false at end of input or once the
// console is closed.
func (c *Console) readLine() (string, bool) {
	c.readOnce.Do(func() { go c.scan() })
	select {
	case line, ok := <-c.lines:
		return line, ok
	case <-c.done:
		return "", false
	}
}

func (c *Console) close() {
	c.doneOnce.Do(func() { close(c.done) })
}

// Run reads commands until quit, end of input or ctx is done. Team list is
// loaded once up front.
func (c *Console) Run(ctx context.Context) error {
	c.cron.Start()
	defer c.cron.Stop()
	defer c.close()
	stop := context.AfterFunc(ctx, c.close)
	defer stop()

	_ = c.ctrl.LoadTeams(ctx)
	c.show()

	for {
		c.printf("> ")
		line, ok := c.readLine()
		if !ok {
			c.printf("\n")
			if ctx.Err() != nil {
				return nil
			}
			return c.readErr
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := c.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the console should exit.
func (c *Console) Exec(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	screen := c.ctrl.Screen()

	var err error
	switch cmd {
	case "quit", "exit":
		c.Unwatch()
		return true
	case "help":
		c.printf("%s\n", helpText)
		return false
	case "show":
	case "dismiss":
		screen.DismissMessage()
	case "init-db":
		err = c.ctrl.InitializeStorage(ctx)
	case "teams":
		err = c.ctrl.LoadTeams(ctx)
	case "name":
		form := c.ctrl.State().Form
		c.ctrl.SetTeamForm(strings.Join(args, " "), form.Strength)
	case "strength":
		form := c.ctrl.State().Form
		c.ctrl.SetTeamForm(form.Name, strings.Join(args, " "))
	case "add":
		if len(args) > 0 {
			c.ctrl.SetTeamForm(strings.Join(args[1:], " "), args[0])
		}
		err = c.ctrl.AddTeam(ctx)
	case "edit":
		if len(args) < 3 {
			c.usage("edit <id> <strength> <name...>")
			break
		}
		id, ok := c.parseID(args[0])
		if !ok {
			break
		}
		err = c.ctrl.EditTeam(ctx, id, strings.Join(args[2:], " "), args[1])
	case "delete":
		if len(args) != 1 {
			c.usage("delete <id>")
			break
		}
		if id, ok := c.parseID(args[0]); ok {
			err = c.ctrl.DeleteTeam(ctx, id)
		}
	case "clear-teams":
		err = c.ctrl.ClearTeams(ctx)
	case "create-league":
		err = c.ctrl.CreateLeague(ctx)
	case "next-week":
		err = c.ctrl.PlayNextWeek(ctx)
	case "play-all":
		err = c.ctrl.PlayAllWeeks(ctx)
	case "clear-league":
		err = c.ctrl.ClearLeague(ctx)
	case "schedule":
		err = c.ctrl.LoadSchedule(ctx)
	case "filter":
		c.filter(args)
	case "refresh":
		c.ctrl.RefreshLeague(ctx)
	case "watch":
		c.watch(ctx, args)
	case "unwatch":
		c.Unwatch()
		screen.ShowMessage(view.MessageSuccess, "Auto-refresh stopped")
	default:
		screen.ShowMessage(view.MessageError, fmt.Sprintf("Unknown command %q, type \"help\"", cmd))
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("command", cmd).Msg("command failed")
	}
	c.show()
	return false
}

func (c *Console) usage(u string) {
	c.ctrl.Screen().ShowMessage(view.MessageError, "Usage: "+u)
}

func (c *Console) parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		c.ctrl.Screen().ShowMessage(view.MessageError, fmt.Sprintf("Invalid team id %q", s))
		return 0, false
	}
	return id, true
}

func (c *Console) filter(args []string) {
	if len(args) != 1 {
		c.usage("filter <week|all>")
		return
	}
	if strings.EqualFold(args[0], "all") {
		c.ctrl.FilterSchedule(0)
		return
	}
	week, err := strconv.Atoi(args[0])
	if err != nil || week < 1 {
		c.ctrl.Screen().ShowMessage(view.MessageError, fmt.Sprintf("Invalid week %q", args[0]))
		return
	}
	c.ctrl.FilterSchedule(week)
}

func (c *Console) watch(ctx context.Context, args []string) {
	screen := c.ctrl.Screen()
	if len(args) != 1 {
		c.usage("watch <interval>")
		return
	}
	every, err := time.ParseDuration(args[0])
	if err != nil || every < MinWatchInterval {
		screen.ShowMessage(view.MessageError, fmt.Sprintf("Invalid interval %q, minimum is %s", args[0], MinWatchInterval))
		return
	}

	c.Unwatch()
	id, err := c.cron.AddFunc("@every "+every.String(), func() {
		c.ctrl.RefreshLeague(ctx)
		c.show()
	})
	if err != nil {
		screen.ShowMessage(view.MessageError, "Failed to start auto-refresh: "+err.Error())
		return
	}
	c.watchID = id
	c.logger.Info().Dur("every", every).Msg("auto-refresh started")
	screen.ShowMessage(view.MessageSuccess, "Auto-refresh every "+every.String())
}

// Unwatch stops auto-refresh if it is running.
func (c *Console) Unwatch() {
	if c.watchID == 0 {
		return
	}
	c.cron.Remove(c.watchID)
	c.watchID = 0
}

// Watching reports whether auto-refresh is active.
func (c *Console) Watching() bool {
	return c.watchID != 0
}

// cronLogger routes scheduler logs through zerolog. Routine scheduler chatter
// is debug level.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
