// Package view owns the named display regions of the console and the pure
// functions that render league data into them.
package view

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Region names a fixed display area.
type Region string

const (
	RegionStatus      Region = "status"
	RegionTeams       Region = "teams"
	RegionTeamCount   Region = "team-count"
	RegionWeekInfo    Region = "week-info"
	RegionTable       Region = "table"
	RegionMatches     Region = "matches"
	RegionPredictions Region = "predictions"
	RegionSchedule    Region = "schedule"
)

// Layout is the order regions appear in a full snapshot.
var Layout = []Region{
	RegionStatus,
	RegionWeekInfo,
	RegionTeamCount,
	RegionTeams,
	RegionTable,
	RegionMatches,
	RegionPredictions,
	RegionSchedule,
}

// Button identifies a user action that shows a loading indicator.
type Button string

const (
	ButtonInitDB       Button = "initDb"
	ButtonCreateLeague Button = "createLeague"
	ButtonClearLeague  Button = "clearLeague"
	ButtonNextWeek     Button = "nextWeek"
	ButtonPlayAll      Button = "playAll"
	ButtonAddTeam      Button = "addTeam"
	ButtonLoadTeams    Button = "loadTeams"
	ButtonClearTeams   Button = "clearTeams"
	ButtonLoadSchedule Button = "loadSchedule"
)

var buttonLabels = map[Button]string{
	ButtonInitDB:       "Initialize DB",
	ButtonCreateLeague: "Create League",
	ButtonClearLeague:  "Clear League",
	ButtonNextWeek:     "Next Week",
	ButtonPlayAll:      "Play All",
	ButtonAddTeam:      "Add Team",
	ButtonLoadTeams:    "Refresh Teams",
	ButtonClearTeams:   "Clear All Teams",
	ButtonLoadSchedule: "Load Schedule",
}

// Label returns the idle caption of b.
func (b Button) Label() string {
	if l, ok := buttonLabels[b]; ok {
		return l
	}
	return "Button"
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
	MessageWarning MessageKind = "warning"
)

// MessageTTL is how long a message stays up unless dismissed earlier.
const MessageTTL = 5 * time.Second

type Message struct {
	Kind    MessageKind
	Text    string
	Expires time.Time
}

// Screen stores the last text rendered into each region. Writes replace the
// region's content. Safe for concurrent use.
type Screen struct {
	mu      sync.Mutex
	regions map[Region]string
	busy    map[Button]bool
	msg     *Message
	now     func() time.Time
}

func NewScreen() *Screen {
	return &Screen{
		regions: make(map[Region]string),
		busy:    make(map[Button]bool),
		now:     time.Now,
	}
}

// SetClock replaces the time source used for message expiry.
func (s *Screen) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Screen) Set(r Region, text string) {
	s.mu.Lock()
	s.regions[r] = text
	s.mu.Unlock()
}

func (s *Screen) Get(r Region) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regions[r]
}

// SetStatus updates the status line.
func (s *Screen) SetStatus(text string) {
	s.Set(RegionStatus, text)
}

// ShowMessage replaces any visible message.
func (s *Screen) ShowMessage(kind MessageKind, text string) {
	s.mu.Lock()
	s.msg = &Message{Kind: kind, Text: text, Expires: s.now().Add(MessageTTL)}
	s.mu.Unlock()
}

// Message returns the visible message, if any has not yet expired.
func (s *Screen) Message() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.msg == nil {
		return Message{}, false
	}
	if !s.now().Before(s.msg.Expires) {
		s.msg = nil
		return Message{}, false
	}
	return *s.msg, true
}

func (s *Screen) DismissMessage() {
	s.mu.Lock()
	s.msg = nil
	s.mu.Unlock()
}

// SetBusy toggles the loading indicator of b.
func (s *Screen) SetBusy(b Button, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.busy[b] = true
		return
	}
	delete(s.busy, b)
}

func (s *Screen) Busy(b Button) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[b]
}

// Snapshot renders every region in Layout order, preceded by the busy
// buttons and the current message.
func (s *Screen) Snapshot() string {
	msg, hasMsg := s.Message()

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	if hasMsg {
		fmt.Fprintf(&b, "[%s] %s\n\n", msg.Kind, msg.Text)
	}
	if len(s.busy) > 0 {
		busy := make([]string, 0, len(s.busy))
		for btn := range s.busy {
			busy = append(busy, btn.Label())
		}
		sort.Strings(busy)
		fmt.Fprintf(&b, "Loading...: %s\n\n", strings.Join(busy, ", "))
	}
	for _, r := range Layout {
		text, ok := s.regions[r]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "== %s ==\n%s\n\n", r, strings.TrimRight(text, "\n"))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
