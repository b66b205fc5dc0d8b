package wizard

import (
	"fmt"
	"strings"
)

// RoomConfig is the adults/children/rooms tuple collected in step 4.
type RoomConfig struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Rooms    int `json:"rooms"`
}

// DefaultRoomConfig is two adults, no children, one room.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{Adults: 2, Children: 0, Rooms: 1}
}

// Valid reports whether every counter is at or above its floor.
func (c RoomConfig) Valid() bool {
	return c.Adults >= CounterAdults.Floor() &&
		c.Children >= CounterChildren.Floor() &&
		c.Rooms >= CounterRooms.Floor()
}

// Counter names one of the three room configuration counters.
type Counter string

const (
	CounterAdults   Counter = "adults"
	CounterChildren Counter = "children"
	CounterRooms    Counter = "rooms"
)

// ParseCounter converts a form value into a Counter.
func ParseCounter(s string) (Counter, error) {
	c := Counter(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CounterAdults, CounterChildren, CounterRooms:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCounter, s)
}

// Floor is the smallest value the counter may hold.
func (c Counter) Floor() int {
	if c == CounterChildren {
		return 0
	}
	return 1
}

// Get returns the current value of counter.
func (c RoomConfig) Get(counter Counter) int {
	switch counter {
	case CounterAdults:
		return c.Adults
	case CounterChildren:
		return c.Children
	case CounterRooms:
		return c.Rooms
	}
	return 0
}

// CanDecrement reports whether counter is above its floor.
func (c RoomConfig) CanDecrement(counter Counter) bool {
	return c.Get(counter) > counter.Floor()
}

// Increment adds one to counter. Increments are always permitted.
func (c *RoomConfig) Increment(counter Counter) {
	c.set(counter, c.Get(counter)+1)
}

// Decrement subtracts one from counter, clamped at the counter's floor.
// Other counters are unaffected.
func (c *RoomConfig) Decrement(counter Counter) {
	c.set(counter, max(c.Get(counter)-1, counter.Floor()))
}

func (c *RoomConfig) set(counter Counter, v int) {
	switch counter {
	case CounterAdults:
		c.Adults = v
	case CounterChildren:
		c.Children = v
	case CounterRooms:
		c.Rooms = v
	}
}
