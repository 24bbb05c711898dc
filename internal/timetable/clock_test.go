package timetable

import (
	"testing"
	"time"

	"github.com/jusunglee/signage-go/internal/models"
)

func TestMinutesUntil(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		reference string
		expected  int
	}{
		{"same minute", "07:00", "07:00", 0},
		{"later today", "07:02", "06:58", 4},
		{"target before reference wraps", "23:59", "00:00", 1439},
		{"wraps past midnight", "00:05", "23:55", 10},
		{"one minute behind", "06:59", "07:00", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesUntil(ParseClock(tt.target), ParseClock(tt.reference))
			if got != tt.expected {
				t.Errorf("MinutesUntil(%s, %s) = %d, want %d", tt.target, tt.reference, got, tt.expected)
			}
		})
	}
}

func TestMinutesUntilRange(t *testing.T) {
	for target := 0; target < MinutesPerDay; target += 7 {
		if MinutesUntil(target, target) != 0 {
			t.Fatalf("MinutesUntil(%d, %d) should be 0", target, target)
		}
		for reference := 0; reference < MinutesPerDay; reference += 13 {
			d := MinutesUntil(target, reference)
			if d < 0 || d >= MinutesPerDay {
				t.Fatalf("MinutesUntil(%d, %d) = %d out of range", target, reference, d)
			}
		}
	}

	// Out of range inputs still land in the day
	if d := MinutesUntil(1500, 0); d != 60 {
		t.Errorf("Expected 60 for 25:00, got %d", d)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"07:00", 420},
		{"07:05:30", 425},
		{"23:59", 1439},
		{"7", 420},
		{"", 0},
		{"xx:10", 10},
		{"25:00", 1500},
		{"12:75", 795},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseClock(tt.input); got != tt.expected {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTimeStringToMinutes(t *testing.T) {
	if got := TimeStringToMinutes(""); got != 0 {
		t.Errorf("Empty reference should be 00:00, got %d", got)
	}
	if got := TimeStringToMinutes("06:58"); got != 418 {
		t.Errorf("Expected 418, got %d", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(425); got != "07:05" {
		t.Errorf("Expected 07:05, got %s", got)
	}
	if got := FormatMinutes(-5); got != "23:55" {
		t.Errorf("Expected 23:55, got %s", got)
	}
}

func TestServiceTypeFor(t *testing.T) {
	tests := []struct {
		date     string
		expected models.ServiceType
	}{
		{"2026-10-17", models.ServiceWeekend}, // Saturday
		{"2026-10-18", models.ServiceWeekend}, // Sunday
		{"2026-10-20", models.ServiceWeekday}, // Tuesday
		{"2026-10-23", models.ServiceWeekday}, // Friday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse(DateLayout, tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := ServiceTypeFor(date); got != tt.expected {
				t.Errorf("ServiceTypeFor(%s) = %s, want %s", tt.date, got, tt.expected)
			}
		})
	}
}

func TestServiceTypeForDate(t *testing.T) {
	tuesday := time.Date(2026, 10, 20, 9, 0, 0, 0, time.Local)

	if got := ServiceTypeForDate("2026-10-17", tuesday); got != models.ServiceWeekend {
		t.Errorf("Saturday should select weekend, got %s", got)
	}
	if got := ServiceTypeForDate("not-a-date", tuesday); got != models.ServiceWeekday {
		t.Errorf("Invalid date should fall back to now, got %s", got)
	}
}

func TestTimetableFilesFor(t *testing.T) {
	files := DefaultTimetableFiles()

	if files.For(models.ServiceWeekday) != "/hiroshima_station_weekday_timetable.csv" {
		t.Errorf("Unexpected weekday file %s", files.For(models.ServiceWeekday))
	}
	if files.For(models.ServiceWeekend) != "/hiroshima_station_weekend_timetable.csv" {
		t.Errorf("Unexpected weekend file %s", files.For(models.ServiceWeekend))
	}
}
