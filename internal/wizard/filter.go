package wizard

import "strings"

// Filter returns the entries of catalog whose name contains query,
// compared case-insensitively, in catalog order. An empty query matches
// everything. No match is not an error; the result is simply empty.
func Filter(catalog []Destination, query string) []Destination {
	q := strings.ToLower(query)
	out := make([]Destination, 0, len(catalog))
	for _, d := range catalog {
		if strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, d)
		}
	}
	return out
}
