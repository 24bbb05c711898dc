package placement

import (
	"math"
	"reflect"
	"testing"

	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/stops"
)

func departure(id, platform string) models.Departure {
	return models.Departure{Trip: models.Trip{ID: id, Platform: platform}}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSlotAllocatorSequence(t *testing.T) {
	a := NewSlotAllocator()

	expected := []int{0, 1, -1, 2, -2, 3, -3, 0, 0}
	for i, want := range expected {
		slot, ordinal := a.Next("16")
		if slot != want {
			t.Errorf("Allocation %d: expected slot %d, got %d", i, want, slot)
		}
		if ordinal != i {
			t.Errorf("Allocation %d: expected ordinal %d, got %d", i, i, ordinal)
		}
	}

	if slot, _ := a.Next("20"); slot != 0 {
		t.Errorf("Expected fresh stop to start at slot 0, got %d", slot)
	}
	if a.Used("16") != len(expected) {
		t.Errorf("Expected %d used slots, got %d", len(expected), a.Used("16"))
	}
}

func TestPlaceSharesSlotsAcrossGroups(t *testing.T) {
	registry := stops.MustDefault()
	stop, _ := registry.Lookup("1")

	groups := make([]Group, 8)
	for i := range groups {
		groups[i] = Group{Style: KamiStyle, Departures: []models.Departure{departure("t", "1")}}
	}

	result := Place(registry, groups...)
	if len(result.Callouts) != 8 {
		t.Fatalf("Expected 8 callouts, got %d", len(result.Callouts))
	}

	slots := []int{0, 1, -1, 2, -2, 3, -3, 0}
	ids := map[string]bool{}
	for i, c := range result.Callouts {
		want := CalloutPosition(stop, slots[i], KamiStyle)
		if c.X != want.X || c.Y != want.Y {
			t.Errorf("Callout %d: expected slot %d position %+v, got (%f, %f)", i, slots[i], want, c.X, c.Y)
		}
		if ids[c.ID] {
			t.Errorf("Duplicate callout id %s", c.ID)
		}
		ids[c.ID] = true
	}
}

func TestPlaceCalloutsDeterministic(t *testing.T) {
	registry := stops.MustDefault()
	kami := []models.Departure{departure("a", "16"), departure("b", "20"), departure("c", "16")}
	hachi := []models.Departure{departure("d", "16"), departure("e", "5")}

	first := PlaceCallouts(registry, kami, hachi)
	second := PlaceCallouts(registry, kami, hachi)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical input")
	}
	if len(first.Callouts) != 4 || len(first.Lines) != 4 {
		t.Fatalf("Expected 4 callouts and lines, got %d and %d", len(first.Callouts), len(first.Lines))
	}

	marker := first.ActiveMarkers["16"]
	if !marker.Kami || !marker.Hachi {
		t.Errorf("Expected stop 16 active for both directions, got %+v", marker)
	}
	if m := first.ActiveMarkers["20"]; !m.Kami || m.Hachi {
		t.Errorf("Expected stop 20 active for kami only, got %+v", m)
	}

	// the hachi callout at 16 takes the second slot
	stop, _ := registry.Lookup("16")
	want := CalloutPosition(stop, 1, HachiStyle)
	got := first.Callouts[2]
	if got.Direction != models.DirectionHachi || got.X != want.X || got.Y != want.Y {
		t.Errorf("Unexpected hachi callout %+v", got)
	}
	if got.Label != "八" || got.Class != "callout--hachi" {
		t.Errorf("Unexpected hachi tags %q %q", got.Label, got.Class)
	}
}

func TestPlaceLinesEndAtStopCenter(t *testing.T) {
	registry := stops.MustDefault()
	result := PlaceCallouts(registry, []models.Departure{departure("a", "21")}, nil)

	center, _ := registry.CenterOf("21")
	line := result.Lines[0]
	callout := result.Callouts[0]

	if line.X2 != center.X || line.Y2 != center.Y {
		t.Errorf("Expected line to end at %+v, got (%f, %f)", center, line.X2, line.Y2)
	}
	if line.X1 != callout.X || line.Y1 != callout.Y {
		t.Error("Expected line to start at the callout")
	}
	if line.Class != "callout-line callout-line--kami" {
		t.Errorf("Unexpected line class %q", line.Class)
	}
}

func TestPlaceSkipsUnknownStops(t *testing.T) {
	registry := stops.MustDefault()
	result := PlaceCallouts(registry, []models.Departure{departure("a", "99"), departure("b", "")}, nil)

	if len(result.Callouts) != 0 || len(result.Lines) != 0 || len(result.ActiveMarkers) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

func TestCalloutPositionClamped(t *testing.T) {
	corners := []models.Stop{
		{ID: "se", Left: 96, Top: 96, Width: 2, Height: 2},
		{ID: "nw", Left: 0, Top: 0, Width: 2, Height: 2},
		{ID: "e", Left: 98, Top: 49, Width: 2, Height: 2},
	}

	for _, stop := range corners {
		for _, style := range []Style{KamiStyle, HachiStyle} {
			for _, slot := range SlotSequence {
				p := CalloutPosition(stop, slot, style)
				if p.X < 3 || p.X > 97 || p.Y < 3 || p.Y > 97 {
					t.Errorf("Stop %s slot %d: position %+v outside canvas", stop.ID, slot, p)
				}
			}
		}
	}

	p := CalloutPosition(corners[0], 0, KamiStyle)
	if p.X != 97 || p.Y != 97 {
		t.Errorf("Expected corner callout clamped to (97, 97), got %+v", p)
	}
}

func TestCalloutPositionAtMapCenter(t *testing.T) {
	stop := models.Stop{ID: "c", Left: 49, Top: 49, Width: 2, Height: 2}

	p := CalloutPosition(stop, 0, KamiStyle)
	if !almostEqual(p.X, 50-2.4*1.2) || !almostEqual(p.Y, 50-8*0.92) {
		t.Errorf("Expected callout above the stop, got %+v", p)
	}

	p = CalloutPosition(stop, 0, HachiStyle)
	if !almostEqual(p.X, 50+2.4*1.2) || !almostEqual(p.Y, 50-8*1.08) {
		t.Errorf("Expected callout above the stop, got %+v", p)
	}
}

func TestStyleFor(t *testing.T) {
	if StyleFor(models.DirectionKami).Label != "紙" {
		t.Error("Expected kami label")
	}
	if StyleFor(models.DirectionHachi).RadiusScale != 1.08 {
		t.Error("Expected hachi radius scale")
	}
}
