package store

import (
	"testing"
	"time"

	"github.com/jusunglee/signage-go/internal/models"
)

func TestStore(t *testing.T) {
	s := NewStore()

	if snap := s.Snapshot(); snap.Status != StatusLoading || len(snap.Trips) != 0 {
		t.Fatalf("Expected empty loading store, got %+v", snap)
	}

	// Test data
	trips := []models.Trip{
		{ID: "a", Route: "5号線", Platform: "16", Time: "07:00", Minutes: 420, StopsKami: true},
		{ID: "b", Route: "24号線: 吉島営業所", Platform: "20", Time: "07:02", Minutes: 422},
		{ID: "c", Route: "5号線", Platform: "16", Time: "07:10", Minutes: 430, StopsHachi: true},
		{ID: "d", Route: "臨時", Platform: "", Time: "07:15", Minutes: 435},
	}

	s.SetLoading("2026-10-20", models.ServiceWeekday, "/weekday.csv")
	s.ReplaceTrips(trips)

	t.Run("Snapshot", func(t *testing.T) {
		snap := s.Snapshot()
		if snap.Status != StatusLoaded {
			t.Errorf("Expected loaded status, got %s", snap.Status)
		}
		if len(snap.Trips) != 4 {
			t.Errorf("Expected 4 trips, got %d", len(snap.Trips))
		}
		if snap.Date != "2026-10-20" || snap.Service != models.ServiceWeekday || snap.File != "/weekday.csv" {
			t.Errorf("Unexpected metadata %+v", snap)
		}

		snap.Trips[0].ID = "changed"
		if s.Trips()[0].ID != "a" {
			t.Error("Snapshot must not alias store trips")
		}
	})

	t.Run("GetTripsByPlatform", func(t *testing.T) {
		results, err := s.GetTripsByPlatform("16")
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if len(results) != 2 || results[0].ID != "a" || results[1].ID != "c" {
			t.Errorf("Expected trips a and c on platform 16, got %+v", results)
		}

		// Test non-existent platform
		_, err = s.GetTripsByPlatform("99")
		if err == nil {
			t.Error("Expected error for non-existent platform")
		}
	})

	t.Run("GetPlatforms", func(t *testing.T) {
		platforms := s.GetPlatforms()
		expected := []string{"16", "20"}
		if len(platforms) != len(expected) {
			t.Fatalf("Expected %d platforms, got %d", len(expected), len(platforms))
		}
		for i := range expected {
			if platforms[i] != expected[i] {
				t.Errorf("Expected platform %s at %d, got %s", expected[i], i, platforms[i])
			}
		}
	})

	t.Run("GetLastUpdate", func(t *testing.T) {
		lastUpdate := s.GetLastUpdate()
		if time.Since(lastUpdate) > time.Minute {
			t.Error("Last update time is too old")
		}
	})
}

func TestStoreLoadingKeepsPreviousTrips(t *testing.T) {
	s := NewStore()
	s.ReplaceTrips([]models.Trip{{ID: "a", Platform: "1"}})

	s.SetLoading("2026-10-17", models.ServiceWeekend, "/weekend.csv")

	snap := s.Snapshot()
	if snap.Status != StatusLoading {
		t.Errorf("Expected loading status, got %s", snap.Status)
	}
	if len(snap.Trips) != 1 {
		t.Errorf("Expected previous trips to remain readable, got %d", len(snap.Trips))
	}
}

func TestStoreErrorAndEmpty(t *testing.T) {
	s := NewStore()
	s.ReplaceTrips([]models.Trip{{ID: "a", Platform: "1"}})

	s.SetError("時刻表の読み込みに失敗しました: HTTP 404")
	snap := s.Snapshot()
	if snap.Status != StatusError || snap.Error == "" {
		t.Errorf("Expected error state, got %+v", snap)
	}
	if len(snap.Trips) != 0 || len(s.GetPlatforms()) != 0 {
		t.Error("Expected trips cleared on error")
	}

	s.ReplaceTrips([]models.Trip{})
	snap = s.Snapshot()
	if snap.Status != StatusLoaded || snap.Error != "" {
		t.Errorf("Expected empty loaded state distinct from error, got %+v", snap)
	}
}
