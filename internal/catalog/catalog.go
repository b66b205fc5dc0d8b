// Package catalog fetches banners, featured destinations and trips from
// the remote travel catalog API.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// DefaultBaseURL is the public catalog API.
const DefaultBaseURL = "https://json-data-1wm2.onrender.com"

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidHandle is returned for handles that are not URL slugs.
	ErrInvalidHandle = errors.New("invalid destination handle")
)

var handlePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidHandle reports whether h is a lowercase hyphenated slug like "south-africa".
func ValidHandle(h string) bool {
	return handlePattern.MatchString(h)
}

// ID accepts both JSON strings and numbers.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// Banner is one slide of the landing page carousel.
type Banner struct {
	ID    ID     `json:"id"`
	Image string `json:"img"`
	Title string `json:"title"`
}

// Featured is a destination card on the landing page.
type Featured struct {
	ID          ID     `json:"id"`
	Image       string `json:"img"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Handle      string `json:"handle"`
}

// Trip is a packaged trip offered for a destination.
type Trip struct {
	Name      string   `json:"trip-name"`
	Price     float64  `json:"price"`
	Duration  string   `json:"duration"`
	Amenities []string `json:"amenities"`
}

// Destination holds the trips for one handle.
type Destination struct {
	Handle string `json:"handle"`
	Trips  []Trip `json:"trips"`
}

type bannersResponse struct {
	Banners []Banner `json:"banners"`
}

type featuredResponse struct {
	Destination []Featured `json:"destination"`
}

type destinationResponse struct {
	Trips []Trip `json:"trips"`
}
