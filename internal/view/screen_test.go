package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreen_MessageExpires(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	s := NewScreen()
	s.SetClock(func() time.Time { return now })

	s.ShowMessage(MessageError, "first")
	s.ShowMessage(MessageSuccess, "second")
	msg, ok := s.Message()
	require.True(t, ok)
	assert.Equal(t, MessageSuccess, msg.Kind)
	assert.Equal(t, "second", msg.Text)

	now = now.Add(MessageTTL - time.Millisecond)
	_, ok = s.Message()
	assert.True(t, ok)

	now = now.Add(time.Millisecond)
	_, ok = s.Message()
	assert.False(t, ok)
}

func TestScreen_Dismiss(t *testing.T) {
	s := NewScreen()
	s.ShowMessage(MessageWarning, "careful")
	s.DismissMessage()
	_, ok := s.Message()
	assert.False(t, ok)
}

func TestScreen_Busy(t *testing.T) {
	s := NewScreen()
	s.SetBusy(ButtonPlayAll, true)
	assert.True(t, s.Busy(ButtonPlayAll))
	assert.Contains(t, s.Snapshot(), "Loading...: Play All")

	s.SetBusy(ButtonPlayAll, false)
	assert.False(t, s.Busy(ButtonPlayAll))
	assert.NotContains(t, s.Snapshot(), "Loading")
	assert.Equal(t, "Button", Button("nope").Label())
}

func TestScreen_SnapshotOrder(t *testing.T) {
	s := NewScreen()
	s.Set(RegionTable, "T")
	s.SetStatus("Ready to start")
	assert.Equal(t, "== status ==\nReady to start\n\n== table ==\nT\n", s.Snapshot())
}
