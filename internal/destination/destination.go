// Package destination holds the static presentation data and formatting
// used by destination pages.
package destination

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/evcraddock/wander/internal/catalog"
)

// Fallbacks for handles without curated data.
const (
	DefaultHandle      = "egypt"
	DefaultDescription = "Explore this amazing destination with our carefully curated trips."
	DefaultBestTime    = "Year-round"
)

// VisibleHighlights is how many amenities a trip card lists before collapsing.
const VisibleHighlights = 3

// Categories label trip cards in rotation.
var Categories = []string{"Adventure", "Cultural", "Luxury", "Budget", "Family"}

type info struct {
	image       string
	description string
	bestTime    string
	tripImages  []string
}

var curated = map[string]info{
	"egypt": {
		image:       "https://res.cloudinary.com/dradkp5i6/image/upload/v1739004325/egypt_scwdiy.jpg",
		description: "Explore ancient pyramids, the mighty Nile, and 7,000 years of fascinating history.",
		bestTime:    "Oct - Apr",
	},
	"turkey": {
		image:       "https://res.cloudinary.com/dradkp5i6/image/upload/v1739004393/turkey_urabbl.jpg",
		description: "Where East meets West, a mesmerizing blend of cultures, stunning coastlines, and mouthwatering cuisine.",
		bestTime:    "Apr - Oct",
	},
	"south-africa": {
		image:       "https://res.cloudinary.com/dradkp5i6/image/upload/v1739004461/south-africa_ifpult.jpg",
		description: "Experience breathtaking safaris, vibrant cities, and the dramatic beauty of Table Mountain.",
		bestTime:    "May - Oct",
	},
	"kenya": {
		image:       "https://res.cloudinary.com/dradkp5i6/image/upload/v1739004527/kenya_eaeull.jpg",
		description: "Witness the Great Migration, encounter the Big Five, and immerse yourself in authentic Maasai culture.",
		bestTime:    "Jun - Oct",
	},
	"bhutan": {
		image:       "https://res.cloudinary.com/dradkp5i6/image/upload/v1739004579/bhutan_qw3z0m.jpg",
		description: "Discover the Land of the Thunder Dragon with ancient monasteries and pristine Himalayan landscapes.",
		bestTime:    "Mar - May, Sep - Nov",
	},
}

func init() {
	// Each curated destination has two trip images; both are its hero image.
	for h, in := range curated {
		in.tripImages = []string{in.image, in.image}
		curated[h] = in
	}
}

// Page is the view model of a destination detail page.
type Page struct {
	Handle      string
	Name        string
	HeroImage   string
	Description string
	BestTime    string
	Trips       []TripCard
}

// TripCard is one trip as rendered on the page.
type TripCard struct {
	Name       string
	Price      string
	Duration   string
	Category   string
	Image      string
	Highlights []string
	Hidden     []string
	MoreLabel  string
}

// NewPage builds the view model for handle. trips may be nil when the
// catalog lookup failed.
func NewPage(handle string, trips []catalog.Trip) Page {
	p := Page{
		Handle:      handle,
		Name:        DisplayName(handle),
		HeroImage:   HeroImage(handle),
		Description: Description(handle),
		BestTime:    BestTime(handle),
	}
	for i, t := range trips {
		p.Trips = append(p.Trips, NewTripCard(handle, i, t))
	}
	return p
}

// NewTripCard formats the trip at position i.
func NewTripCard(handle string, i int, t catalog.Trip) TripCard {
	shown, hidden := SplitHighlights(t.Amenities)
	card := TripCard{
		Name:       t.Name,
		Price:      FormatPrice(t.Price),
		Duration:   t.Duration,
		Category:   Category(i),
		Image:      TripImage(handle, i),
		Highlights: shown,
		Hidden:     hidden,
	}
	if len(hidden) > 0 {
		card.MoreLabel = fmt.Sprintf("+ %d more highlights", len(hidden))
	}
	return card
}

// DisplayName turns "south-africa" into "South Africa".
func DisplayName(handle string) string {
	words := strings.Split(handle, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// HeroImage returns the banner image, falling back to DefaultHandle's.
func HeroImage(handle string) string {
	if in, ok := curated[handle]; ok {
		return in.image
	}
	return curated[DefaultHandle].image
}

// Description returns the curated blurb or DefaultDescription.
func Description(handle string) string {
	if in, ok := curated[handle]; ok {
		return in.description
	}
	return DefaultDescription
}

// BestTime returns the best months to visit or DefaultBestTime.
func BestTime(handle string) string {
	if in, ok := curated[handle]; ok {
		return in.bestTime
	}
	return DefaultBestTime
}

// TripImage cycles through the destination's trip images.
func TripImage(handle string, i int) string {
	in, ok := curated[handle]
	if !ok || len(in.tripImages) == 0 {
		return curated[DefaultHandle].image
	}
	return in.tripImages[i%len(in.tripImages)]
}

// Category labels trip i.
func Category(i int) string {
	if i < 0 {
		i = -i
	}
	return Categories[i%len(Categories)]
}

// FormatPrice renders whole US dollars, e.g. "$1,299".
func FormatPrice(p float64) string {
	return "$" + humanize.Comma(int64(math.Round(p)))
}

// SplitHighlights returns the visible amenities and the collapsed rest.
func SplitHighlights(amenities []string) (shown, hidden []string) {
	if len(amenities) <= VisibleHighlights {
		return amenities, nil
	}
	return amenities[:VisibleHighlights], amenities[VisibleHighlights:]
}

// Handles lists the curated destinations.
func Handles() []string {
	return []string{"egypt", "turkey", "south-africa", "kenya", "bhutan"}
}
