package feed

import (
	"context"
	"os"
	"sync"

	"github.com/jusunglee/signage-go/internal/timetable"
)

// SampleWeekday is a small weekday timetable in the station file format
const SampleWeekday = `trip_id,route_id,route_name,trip_headsign,platform_code,hiroshima_departure_time,stops_kamiyacho_after_hiroshima,stops_hatchobori_after_hiroshima
w1,5,5号線: 紙屋町経由,広島港,16,07:00,1,0
w2,24,24号線: 吉島営業所,吉島,20,07:02,1,1
w3,7,7号線: 八丁堀経由,横川,21,07:05,0,1
w4,2,2号線: 市役所経由,宇品,1,07:30,1,0
w5,6,6号線,牛田,17,23:55,0,1
`

// SampleWeekend is a small weekend timetable in the station file format
const SampleWeekend = `trip_id,route_id,route_name,trip_headsign,platform_code,hiroshima_departure_time,stops_kamiyacho_after_hiroshima,stops_hatchobori_after_hiroshima
s1,5,5号線: 紙屋町経由,広島港,16,08:00,1,0
s2,24,24号線: 吉島営業所,吉島,20,08:10,0,1
`

// MemoryFetcher serves timetable text from memory
type MemoryFetcher struct {
	mu    sync.Mutex
	files map[string]string
	calls []string
}

// NewMemoryFetcher creates a fetcher for the given path to text map
func NewMemoryFetcher(files map[string]string) *MemoryFetcher {
	return &MemoryFetcher{files: files}
}

// NewSampleFetcher serves SampleWeekday and SampleWeekend under files
func NewSampleFetcher(files timetable.TimetableFiles) *MemoryFetcher {
	return NewMemoryFetcher(map[string]string{
		files.Weekday: SampleWeekday,
		files.Weekend: SampleWeekend,
	})
}

// Fetch returns the text stored for path
func (f *MemoryFetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, path)
	text, ok := f.files[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return text, nil
}

// Calls returns the paths fetched so far
func (f *MemoryFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]string, len(f.calls))
	copy(result, f.calls)
	return result
}
