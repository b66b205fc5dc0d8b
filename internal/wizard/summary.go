package wizard

import (
	"fmt"
	"strconv"
)

// Summary is what the confirmation step shows for a finished itinerary.
type Summary struct {
	Headline    string `json:"headline"`
	Destination string `json:"destination"`
	Duration    string `json:"duration"`
	Travelers   string `json:"travelers"`
	Rooms       string `json:"rooms"`
	TripType    string `json:"tripType"`
}

// NewSummary formats an itinerary for display.
func NewSummary(it Itinerary) Summary {
	return Summary{
		Headline:    fmt.Sprintf("Your %s-day trip to %s has been planned.", it.DurationLabel, it.Destination),
		Destination: it.Destination,
		Duration:    it.DurationLabel,
		Travelers:   FormatTravelers(it.RoomConfig),
		Rooms:       strconv.Itoa(it.RoomConfig.Rooms),
		TripType:    it.TravellerType.TripLabel(),
	}
}

// FormatTravelers renders counts like "3 Adults, 1 Child". Children are
// omitted when there are none.
func FormatTravelers(cfg RoomConfig) string {
	s := fmt.Sprintf("%d Adult", cfg.Adults)
	if cfg.Adults > 1 {
		s += "s"
	}
	if cfg.Children > 0 {
		s += fmt.Sprintf(", %d Child", cfg.Children)
		if cfg.Children > 1 {
			s += "ren"
		}
	}
	return s
}
