package models

import (
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input     string
		expected  Direction
		expectErr bool
	}{
		{"kami", DirectionKami, false},
		{"hachi", DirectionHachi, false},
		{"KAMI", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDirection(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseDirection(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d != tt.expected {
				t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, d, tt.expected)
			}
		})
	}
}

func TestTripServes(t *testing.T) {
	trip := Trip{StopsKami: true}

	if !trip.Serves(DirectionKami) {
		t.Error("Expected trip to serve kami")
	}
	if trip.Serves(DirectionHachi) {
		t.Error("Expected trip not to serve hachi")
	}
	if trip.Serves(Direction("other")) {
		t.Error("Unknown direction should never be served")
	}
}

func TestTripShortTime(t *testing.T) {
	if got := (Trip{Time: "07:05:30"}).ShortTime(); got != "07:05" {
		t.Errorf("Expected 07:05, got %s", got)
	}
	if got := (Trip{Time: "7:05"}).ShortTime(); got != "7:05" {
		t.Errorf("Expected 7:05, got %s", got)
	}
}

func TestStopCenter(t *testing.T) {
	stop := Stop{ID: "16", Left: 37.72, Top: 92.29, Width: 4.44, Height: 3.38}
	c := stop.Center()

	if c.X != 37.72+4.44/2 || c.Y != 92.29+3.38/2 {
		t.Errorf("Unexpected center %+v", c)
	}
}

func TestMarkerState(t *testing.T) {
	var m MarkerState
	m.Set(DirectionKami)
	m.Set(DirectionHachi)

	if !m.Kami || !m.Hachi {
		t.Fatalf("Expected both flags, got %+v", m)
	}

	classes := m.Classes()
	expected := []string{"marker", "active-kami", "active-hachi"}
	if len(classes) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, classes)
	}
	for i := range expected {
		if classes[i] != expected[i] {
			t.Errorf("Class %d: expected %s, got %s", i, expected[i], classes[i])
		}
	}
}

func TestServiceTypeLabel(t *testing.T) {
	if ServiceWeekday.Label() != "平日ダイヤ" {
		t.Errorf("Unexpected weekday label %s", ServiceWeekday.Label())
	}
	if ServiceWeekend.Label() != "週末ダイヤ" {
		t.Errorf("Unexpected weekend label %s", ServiceWeekend.Label())
	}
}
