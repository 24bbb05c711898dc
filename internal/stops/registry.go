package stops

import (
	"errors"
	"fmt"
	"math"

	"github.com/jusunglee/signage-go/internal/models"
)

var (
	ErrDuplicateStop   = errors.New("duplicate stop id")
	ErrStopOutOfBounds = errors.New("stop outside map plane")
	ErrInvalidStop     = errors.New("invalid stop")
)

// Registry is the immutable stop geometry of the station map
type Registry struct {
	stops map[string]models.Stop
	order []string
}

// NewRegistry validates the stops and derives their centers.
// Ids must be unique and every box must lie within [0,100] on both axes.
func NewRegistry(stops []models.Stop) (*Registry, error) {
	r := &Registry{
		stops: make(map[string]models.Stop, len(stops)),
		order: make([]string, 0, len(stops)),
	}

	for _, stop := range stops {
		if err := validate(stop); err != nil {
			return nil, err
		}
		if _, exists := r.stops[stop.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStop, stop.ID)
		}

		center := stop.Center()
		stop.CenterX = center.X
		stop.CenterY = center.Y

		r.stops[stop.ID] = stop
		r.order = append(r.order, stop.ID)
	}

	return r, nil
}

// MustDefault returns the registry of the built-in geometry
func MustDefault() *Registry {
	r, err := NewRegistry(DefaultStops())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the stop with the given id
func (r *Registry) Lookup(id string) (models.Stop, bool) {
	stop, ok := r.stops[id]
	return stop, ok
}

// CenterOf returns the center point of a stop
func (r *Registry) CenterOf(id string) (models.Point, bool) {
	stop, ok := r.stops[id]
	if !ok {
		return models.Point{}, false
	}
	return models.Point{X: stop.CenterX, Y: stop.CenterY}, true
}

// Stops returns all stops in configuration order
func (r *Registry) Stops() []models.Stop {
	result := make([]models.Stop, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.stops[id])
	}
	return result
}

// Len returns the number of stops
func (r *Registry) Len() int {
	return len(r.order)
}

func validate(stop models.Stop) error {
	if stop.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidStop)
	}
	for _, v := range []float64{stop.Left, stop.Top, stop.Width, stop.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has non-finite geometry", ErrInvalidStop, stop.ID)
		}
	}
	if stop.Width < 0 || stop.Height < 0 {
		return fmt.Errorf("%w: %s has negative size", ErrInvalidStop, stop.ID)
	}
	if stop.Left < 0 || stop.Top < 0 || stop.Left+stop.Width > 100 || stop.Top+stop.Height > 100 {
		return fmt.Errorf("%w: %s", ErrStopOutOfBounds, stop.ID)
	}
	return nil
}
