// Package wizard implements the "customize your trip" flow: a linear
// five-step state machine that accumulates one Itinerary per session.
//
// Each selection writes its field and advances in a single call, so a step
// can never be reached without the data of the steps before it. Back and
// Continue move one step without touching data, and Close starts over.
package wizard

import (
	"encoding/json"
	"fmt"
)

// Step identifies one of the five wizard stages.
type Step int

const (
	StepDestination Step = iota + 1
	StepDuration
	StepTraveller
	StepRooms
	StepConfirmation
)

// Valid reports whether s is between StepDestination and StepConfirmation.
func (s Step) Valid() bool {
	return s >= StepDestination && s <= StepConfirmation
}

func (s Step) String() string {
	switch s {
	case StepDestination:
		return "destination"
	case StepDuration:
		return "duration"
	case StepTraveller:
		return "traveller"
	case StepRooms:
		return "rooms"
	case StepConfirmation:
		return "confirmation"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Itinerary is the record accumulated across the wizard.
type Itinerary struct {
	Destination   string        `json:"destination"`
	DurationLabel string        `json:"durationLabel"`
	TravellerType TravellerType `json:"travellerType"`
	RoomConfig    RoomConfig    `json:"roomConfig"`
}

// NewItinerary returns an empty itinerary with the default room configuration.
func NewItinerary() Itinerary {
	return Itinerary{RoomConfig: DefaultRoomConfig()}
}

// Controller owns the current step and the itinerary for one wizard session.
// The zero value is not usable; call New.
type Controller struct {
	step      Step
	itinerary Itinerary
	// completed[s] is set once step s has written its field.
	completed [StepConfirmation]bool
	search    string
	// draft holds the step 4 counters until they are confirmed.
	draft RoomConfig
}

// New returns a controller at step 1 with a fresh itinerary.
func New() *Controller {
	c := &Controller{}
	c.Close()
	return c
}

// Step returns the current step.
func (c *Controller) Step() Step { return c.step }

// Itinerary returns a copy of the committed itinerary.
func (c *Controller) Itinerary() Itinerary { return c.itinerary }

// Search returns the destination search text.
func (c *Controller) Search() string { return c.search }

// SetSearch replaces the destination search text.
func (c *Controller) SetSearch(q string) { c.search = q }

// Results returns the catalog filtered by the current search text.
func (c *Controller) Results() []Destination {
	return Filter(Catalog(), c.search)
}

// Draft returns the uncommitted step 4 room counters.
func (c *Controller) Draft() RoomConfig { return c.draft }

// Completed reports whether step s has written its itinerary field.
func (c *Controller) Completed(s Step) bool {
	if s < StepDestination || s > StepRooms {
		return false
	}
	return c.completed[s-1]
}

// SelectDestination records the destination and moves to step 2.
func (c *Controller) SelectDestination(name string) error {
	if err := c.require("select destination", StepDestination); err != nil {
		return err
	}
	d, ok := LookupDestination(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDestination, name)
	}
	c.itinerary.Destination = d.Name
	c.complete(StepDestination)
	return nil
}

// SelectDuration records the duration label and moves to step 3.
func (c *Controller) SelectDuration(label string) error {
	if err := c.require("select duration", StepDuration); err != nil {
		return err
	}
	if !ValidDuration(label) {
		return fmt.Errorf("%w: %q", ErrUnknownDuration, label)
	}
	c.itinerary.DurationLabel = label
	c.complete(StepDuration)
	return nil
}

// SelectTravellerType records who is travelling and moves to step 4.
func (c *Controller) SelectTravellerType(t TravellerType) error {
	if err := c.require("select traveller type", StepTraveller); err != nil {
		return err
	}
	if _, err := ParseTravellerType(string(t)); err != nil {
		return err
	}
	c.itinerary.TravellerType = t
	c.complete(StepTraveller)
	return nil
}

// IncrementRoom raises one of the step 4 draft counters.
func (c *Controller) IncrementRoom(counter Counter) error {
	if err := c.require("increment "+string(counter), StepRooms); err != nil {
		return err
	}
	if _, err := ParseCounter(string(counter)); err != nil {
		return err
	}
	c.draft.Increment(counter)
	return nil
}

// DecrementRoom lowers one of the step 4 draft counters, clamped at its floor.
func (c *Controller) DecrementRoom(counter Counter) error {
	if err := c.require("decrement "+string(counter), StepRooms); err != nil {
		return err
	}
	if _, err := ParseCounter(string(counter)); err != nil {
		return err
	}
	c.draft.Decrement(counter)
	return nil
}

// ConfirmRooms commits cfg as the room configuration and moves to step 5.
func (c *Controller) ConfirmRooms(cfg RoomConfig) error {
	if err := c.require("confirm rooms", StepRooms); err != nil {
		return err
	}
	if !cfg.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidRoomConfig, cfg)
	}
	c.itinerary.RoomConfig = cfg
	c.draft = cfg
	c.complete(StepRooms)
	return nil
}

// ConfirmDraft commits the current draft counters.
func (c *Controller) ConfirmDraft() error {
	return c.ConfirmRooms(c.draft)
}

// Back returns to the previous step. Allowed from steps 2 to 4.
func (c *Controller) Back() error {
	if c.step < StepDuration || c.step > StepRooms {
		return &StepError{Op: "back", Step: c.step}
	}
	c.enter(c.step - 1)
	return nil
}

// CanContinue reports whether the current step's field is already filled
// in, which only happens after going Back past it.
func (c *Controller) CanContinue() bool {
	if c.step < StepDuration || c.step > StepRooms {
		return false
	}
	return c.completed[c.step-1]
}

// Continue moves forward one step without changing data.
func (c *Controller) Continue() error {
	if c.step < StepDuration || c.step > StepRooms {
		return &StepError{Op: "continue", Step: c.step}
	}
	if !c.CanContinue() {
		return fmt.Errorf("continue from %s: %w", c.step, ErrCannotContinue)
	}
	c.enter(c.step + 1)
	return nil
}

// Close discards everything and returns to step 1.
func (c *Controller) Close() {
	c.step = StepDestination
	c.itinerary = NewItinerary()
	c.completed = [StepConfirmation]bool{}
	c.search = ""
	c.draft = c.itinerary.RoomConfig
}

// Summary returns the confirmation view. Only available at step 5.
func (c *Controller) Summary() (Summary, error) {
	if c.step != StepConfirmation {
		return Summary{}, ErrNotConfirmed
	}
	return NewSummary(c.itinerary), nil
}

func (c *Controller) require(op string, s Step) error {
	if c.step != s {
		return &StepError{Op: op, Step: c.step}
	}
	return nil
}

func (c *Controller) complete(s Step) {
	c.completed[s-1] = true
	c.enter(s + 1)
}

func (c *Controller) enter(s Step) {
	c.step = s
	if s == StepRooms {
		c.draft = c.itinerary.RoomConfig
	}
}

// State is the serialised form of a Controller.
type State struct {
	Step        Step       `json:"step"`
	Itinerary   Itinerary  `json:"itinerary"`
	Completed   []bool     `json:"completed"`
	Search      string     `json:"search"`
	Draft       RoomConfig `json:"draft"`
	CanContinue bool       `json:"canContinue"`
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	completed := make([]bool, len(c.completed))
	copy(completed, c.completed[:])
	return State{
		Step:        c.step,
		Itinerary:   c.itinerary,
		Completed:   completed,
		Search:      c.search,
		Draft:       c.draft,
		CanContinue: c.CanContinue(),
	}
}

// Restore builds a controller from a snapshot, rejecting snapshots that
// break the wizard's invariants.
func Restore(s State) (*Controller, error) {
	if !s.Step.Valid() {
		return nil, fmt.Errorf("%w: step %d", ErrCorruptState, int(s.Step))
	}
	if !s.Itinerary.RoomConfig.Valid() || !s.Draft.Valid() {
		return nil, fmt.Errorf("%w: room configuration below floor", ErrCorruptState)
	}
	if len(s.Completed) > int(StepConfirmation) {
		return nil, fmt.Errorf("%w: %d completion flags", ErrCorruptState, len(s.Completed))
	}
	c := &Controller{
		step:      s.Step,
		itinerary: s.Itinerary,
		search:    s.Search,
		draft:     s.Draft,
	}
	copy(c.completed[:], s.Completed)
	// Every step before the current one must have been completed.
	for st := StepDestination; st < s.Step; st++ {
		if !c.completed[st-1] {
			return nil, fmt.Errorf("%w: reached %s without completing %s", ErrCorruptState, s.Step, st)
		}
	}
	return c, nil
}

// MarshalJSON implements json.Marshaler.
func (c *Controller) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.State())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Controller) UnmarshalJSON(data []byte) error {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding wizard state: %w: %w", ErrCorruptState, err)
	}
	restored, err := Restore(s)
	if err != nil {
		return err
	}
	*c = *restored
	return nil
}
