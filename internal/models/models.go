package models

import (
	"fmt"
)

// Direction identifies a waypoint group a trip may serve after leaving the station
type Direction string

const (
	DirectionKami  Direction = "kami"
	DirectionHachi Direction = "hachi"
)

// Directions lists the highlighted directions in placement order
var Directions = []Direction{DirectionKami, DirectionHachi}

// ParseDirection converts a path or query value to a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionKami, DirectionHachi:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// ServiceType selects the weekday or weekend timetable
type ServiceType string

const (
	ServiceWeekday ServiceType = "weekday"
	ServiceWeekend ServiceType = "weekend"
)

// Label returns the display name of the timetable
func (s ServiceType) Label() string {
	if s == ServiceWeekday {
		return "平日ダイヤ"
	}
	return "週末ダイヤ"
}

// Trip is one scheduled departure from the station
type Trip struct {
	ID         string `json:"id"`
	RouteID    string `json:"route_id,omitempty"`
	Route      string `json:"route"`
	Headsign   string `json:"headsign"`
	Platform   string `json:"platform"`
	Time       string `json:"time"`
	Minutes    int    `json:"minutes"`
	StopsKami  bool   `json:"stops_kami"`
	StopsHachi bool   `json:"stops_hachi"`
}

// Serves reports whether the trip passes the waypoint of the given direction
func (t Trip) Serves(d Direction) bool {
	switch d {
	case DirectionKami:
		return t.StopsKami
	case DirectionHachi:
		return t.StopsHachi
	}
	return false
}

// ShortTime returns the HH:MM part of the departure time
func (t Trip) ShortTime() string {
	if len(t.Time) > 5 {
		return t.Time[:5]
	}
	return t.Time
}

// Departure is a trip with its wraparound distance from the reference time
type Departure struct {
	Trip
	ETA   int    `json:"eta"`
	Soon  bool   `json:"soon"`
	Title string `json:"title"`
}

// Point is a position on the 0-100 map plane
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stop is a boarding location drawn as a marker on the map
type Stop struct {
	ID      string  `json:"id" yaml:"id" csv:"id"`
	Left    float64 `json:"left" yaml:"left" csv:"left"`
	Top     float64 `json:"top" yaml:"top" csv:"top"`
	Width   float64 `json:"width" yaml:"width" csv:"width"`
	Height  float64 `json:"height" yaml:"height" csv:"height"`
	CenterX float64 `json:"center_x" yaml:"-" csv:"-"`
	CenterY float64 `json:"center_y" yaml:"-" csv:"-"`
}

// Center returns the center point of the stop box
func (s Stop) Center() Point {
	return Point{X: s.Left + s.Width/2, Y: s.Top + s.Height/2}
}

// MarkerState carries the directions a stop marker is highlighted for
type MarkerState struct {
	Kami  bool `json:"kami,omitempty"`
	Hachi bool `json:"hachi,omitempty"`
}

// Set marks the direction as active without clearing the other one
func (m *MarkerState) Set(d Direction) {
	switch d {
	case DirectionKami:
		m.Kami = true
	case DirectionHachi:
		m.Hachi = true
	}
}

// Classes returns the marker tags for rendering
func (m MarkerState) Classes() []string {
	classes := []string{"marker"}
	if m.Kami {
		classes = append(classes, "active-kami")
	}
	if m.Hachi {
		classes = append(classes, "active-hachi")
	}
	return classes
}

// Callout is a floating label placed near a stop
type Callout struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
	Class     string    `json:"class"`
	StopID    string    `json:"stop_id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
}

// Line connects a callout back to its stop center
type Line struct {
	ID    string  `json:"id"`
	Class string  `json:"class"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

// HighlightResult is the renderable geometry for the highlighted stops
type HighlightResult struct {
	ActiveMarkers map[string]MarkerState `json:"active_markers"`
	Callouts      []Callout              `json:"callouts"`
	Lines         []Line                 `json:"lines"`
}

// NewHighlightResult returns an empty result ready for placement
func NewHighlightResult() HighlightResult {
	return HighlightResult{
		ActiveMarkers: make(map[string]MarkerState),
		Callouts:      []Callout{},
		Lines:         []Line{},
	}
}
