package display

import (
	"testing"
	"time"
)

var (
	morning = time.Date(2026, 10, 20, 6, 58, 0, 0, time.UTC)
	later   = time.Date(2026, 10, 21, 8, 15, 0, 0, time.UTC)
)

func TestNewStateIsLive(t *testing.T) {
	s := NewState(morning)

	if !s.Live || s.Mode() != ModeLive {
		t.Error("Expected live mode")
	}
	if s.ReferenceTime != "06:58" || s.ReferenceDate != "2026-10-20" {
		t.Errorf("Unexpected reference %s %s", s.ReferenceTime, s.ReferenceDate)
	}
	if s.EditorTime != s.ReferenceTime || s.EditorDate != s.ReferenceDate {
		t.Error("Expected editor values to match the reference")
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name         string
		apply        func(State) State
		expectLive   bool
		expectTime   string
		expectDate   string
		expectEditor string
		expectShown  string
	}{
		{
			name:         "tick in live mode follows the clock",
			apply:        func(s State) State { return s.Tick(later) },
			expectLive:   true,
			expectTime:   "08:15",
			expectDate:   "2026-10-21",
			expectEditor: "08:15",
			expectShown:  "08:15",
		},
		{
			name:         "edit time leaves live mode",
			apply:        func(s State) State { return s.EditTime("23:55") },
			expectLive:   false,
			expectTime:   "23:55",
			expectDate:   "2026-10-20",
			expectEditor: "23:55",
			expectShown:  "23:55",
		},
		{
			name:         "empty edited time means midnight",
			apply:        func(s State) State { return s.EditTime("") },
			expectLive:   false,
			expectTime:   "00:00",
			expectDate:   "2026-10-20",
			expectEditor: "",
			expectShown:  "00:00",
		},
		{
			name:         "tick in manual mode keeps the reference",
			apply:        func(s State) State { return s.EditTime("12:00").Tick(later) },
			expectLive:   false,
			expectTime:   "12:00",
			expectDate:   "2026-10-20",
			expectEditor: "12:00",
			expectShown:  "12:00",
		},
		{
			name:         "edit date leaves live mode",
			apply:        func(s State) State { return s.EditDate("2026-10-17", later) },
			expectLive:   false,
			expectTime:   "06:58",
			expectDate:   "2026-10-17",
			expectEditor: "06:58",
			expectShown:  "06:58",
		},
		{
			name:         "empty edited date means today",
			apply:        func(s State) State { return s.EditDate("", later) },
			expectLive:   false,
			expectTime:   "06:58",
			expectDate:   "2026-10-21",
			expectEditor: "06:58",
			expectShown:  "06:58",
		},
		{
			name:         "apply copies editor values",
			apply:        func(s State) State { return s.SetEditor("", "").Apply(later) },
			expectLive:   false,
			expectTime:   "00:00",
			expectDate:   "2026-10-21",
			expectEditor: "",
			expectShown:  "00:00",
		},
		{
			name:         "reset to now returns to live",
			apply:        func(s State) State { return s.EditTime("12:00").ResetToNow(later) },
			expectLive:   true,
			expectTime:   "08:15",
			expectDate:   "2026-10-21",
			expectEditor: "08:15",
			expectShown:  "08:15",
		},
		{
			name:         "toggle off keeps the reference",
			apply:        func(s State) State { return s.ToggleLive(later) },
			expectLive:   false,
			expectTime:   "06:58",
			expectDate:   "2026-10-20",
			expectEditor: "06:58",
			expectShown:  "06:58",
		},
		{
			name:         "toggle on re-syncs to now",
			apply:        func(s State) State { return s.EditTime("12:00").ToggleLive(later) },
			expectLive:   true,
			expectTime:   "08:15",
			expectDate:   "2026-10-21",
			expectEditor: "08:15",
			expectShown:  "08:15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := NewState(morning)
			s := tt.apply(start)

			if s.Live != tt.expectLive {
				t.Errorf("Expected live=%v, got %v", tt.expectLive, s.Live)
			}
			if s.ReferenceTime != tt.expectTime {
				t.Errorf("Expected reference time %s, got %s", tt.expectTime, s.ReferenceTime)
			}
			if s.ReferenceDate != tt.expectDate {
				t.Errorf("Expected reference date %s, got %s", tt.expectDate, s.ReferenceDate)
			}
			if s.EditorTime != tt.expectEditor {
				t.Errorf("Expected editor time %q, got %q", tt.expectEditor, s.EditorTime)
			}
			if s.DisplayTime() != tt.expectShown {
				t.Errorf("Expected display time %s, got %s", tt.expectShown, s.DisplayTime())
			}
			if start != NewState(morning) {
				t.Error("Transition modified its receiver")
			}
		})
	}
}

func TestManualDisplayIgnoresLiveClock(t *testing.T) {
	s := NewState(morning).EditTime("12:00").Tick(later)
	if s.LiveClock != "08:15" {
		t.Errorf("Expected live clock to advance, got %s", s.LiveClock)
	}
	if s.DisplayTime() != "12:00" {
		t.Errorf("Expected manual reference on display, got %s", s.DisplayTime())
	}
}

func TestReferenceAt(t *testing.T) {
	s := NewState(morning).EditTime("23:55").EditDate("2026-10-17", morning)
	want := time.Date(2026, 10, 17, 23, 55, 0, 0, time.UTC)
	if got := s.ReferenceAt(morning); !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	s = s.EditDate("not-a-date", morning)
	want = time.Date(2026, 10, 20, 23, 55, 0, 0, time.UTC)
	if got := s.ReferenceAt(morning); !got.Equal(want) {
		t.Errorf("Expected fallback %v, got %v", want, got)
	}

	if s.ReferenceMinutes() != 23*60+55 {
		t.Errorf("Unexpected reference minutes %d", s.ReferenceMinutes())
	}
}
