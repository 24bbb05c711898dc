package gtfsrt

import (
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/jusunglee/signage-go/internal/models"
	"google.golang.org/protobuf/proto"
)

// Version is the GTFS-realtime version written to the feed header
const Version = "2.0"

// BuildFeed turns departures into a full-dataset FeedMessage with one
// scheduled TripUpdate each. reference is the wall-clock time the ETAs were
// measured from.
func BuildFeed(departures []models.Departure, reference time.Time) *gtfs.FeedMessage {
	base := reference.Truncate(time.Minute)

	entity := make([]*gtfs.FeedEntity, 0, len(departures))
	for _, d := range departures {
		departure := base.Add(time.Duration(d.ETA) * time.Minute).Unix()

		trip := &gtfs.TripDescriptor{
			TripId:               proto.String(d.ID),
			ScheduleRelationship: gtfs.TripDescriptor_SCHEDULED.Enum(),
		}
		if d.RouteID != "" {
			trip.RouteId = proto.String(d.RouteID)
		}

		entity = append(entity, &gtfs.FeedEntity{
			Id: proto.String(d.ID),
			TripUpdate: &gtfs.TripUpdate{
				Trip: trip,
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
					{
						StopId: proto.String(d.Platform),
						Departure: &gtfs.TripUpdate_StopTimeEvent{
							Time: proto.Int64(departure),
						},
						ScheduleRelationship: gtfs.TripUpdate_StopTimeUpdate_SCHEDULED.Enum(),
					},
				},
			},
		})
	}

	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(Version),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(reference.Unix())),
		},
		Entity: entity,
	}
}

// Encode marshals the feed built from departures
func Encode(departures []models.Departure, reference time.Time) ([]byte, error) {
	return proto.Marshal(BuildFeed(departures, reference))
}
