package wizard

import (
	"fmt"
	"strings"
)

// Destination is one entry of the wizard's pick-a-destination list.
type Destination struct {
	Name string `json:"name"`
	Tag  string `json:"tag,omitempty"`
}

var destinations = []Destination{
	{Name: "Maldives", Tag: "HONEYMOON"},
	{Name: "Europe", Tag: "TRENDING"},
	{Name: "Singapore", Tag: "POPULAR"},
	{Name: "Bali", Tag: "IN SEASON"},
	{Name: "Thailand", Tag: "BUDGET"},
	{Name: "Abu Dhabi", Tag: "POPULAR"},
	{Name: "Dubai"},
	{Name: "Japan"},
	{Name: "Australia"},
	{Name: "France"},
	{Name: "Italy"},
	{Name: "Spain"},
	{Name: "Greece"},
	{Name: "Switzerland"},
}

// Catalog returns a copy of the fixed destination list in display order.
func Catalog() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// LookupDestination finds a catalog entry by name, ignoring case.
func LookupDestination(name string) (Destination, bool) {
	for _, d := range destinations {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, true
		}
	}
	return Destination{}, false
}

// DurationOption is one of the holiday length choices offered in step 2.
type DurationOption struct {
	Range       string `json:"range"`
	Recommended bool   `json:"recommended"`
}

var durations = []DurationOption{
	{Range: "3-5 Days", Recommended: true},
	{Range: "6-8 Days"},
	{Range: "9-11 Days"},
	{Range: "12-15 Days"},
}

// Durations returns the duration choices in display order.
func Durations() []DurationOption {
	out := make([]DurationOption, len(durations))
	copy(out, durations)
	return out
}

// ValidDuration returns true if label is one of the offered duration ranges.
func ValidDuration(label string) bool {
	for _, d := range durations {
		if d.Range == label {
			return true
		}
	}
	return false
}

// TravellerType is who the customer is travelling with.
type TravellerType string

const (
	TravellerCouple  TravellerType = "couple"
	TravellerFamily  TravellerType = "family"
	TravellerFriends TravellerType = "friends"
	TravellerSolo    TravellerType = "solo"
)

// TravellerOption pairs a traveller type with its display label and emoji.
type TravellerOption struct {
	ID    TravellerType `json:"id"`
	Label string        `json:"label"`
	Emoji string        `json:"emoji"`
}

var travellerOptions = []TravellerOption{
	{ID: TravellerCouple, Label: "Couple", Emoji: "❤️"},
	{ID: TravellerFamily, Label: "Family", Emoji: "👨‍👩‍👧"},
	{ID: TravellerFriends, Label: "Friends", Emoji: "🎉"},
	{ID: TravellerSolo, Label: "Solo", Emoji: "🎒"},
}

// TravellerOptions returns the traveller type choices in display order.
func TravellerOptions() []TravellerOption {
	out := make([]TravellerOption, len(travellerOptions))
	copy(out, travellerOptions)
	return out
}

// ParseTravellerType converts a form or flag value into a TravellerType.
func ParseTravellerType(s string) (TravellerType, error) {
	t := TravellerType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TravellerCouple, TravellerFamily, TravellerFriends, TravellerSolo:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTravellerType, s)
}

// TripLabel is the trip type shown on the confirmation summary.
// Anything that is not solo, couple or family reads as a friends trip.
func (t TravellerType) TripLabel() string {
	switch t {
	case TravellerSolo:
		return "Solo Trip"
	case TravellerCouple:
		return "Couple Trip"
	case TravellerFamily:
		return "Family Trip"
	default:
		return "Friends Trip"
	}
}
