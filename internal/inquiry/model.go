// Package inquiry provides contact inquiries and confirmed plans, their
// validation and their sqlite storage.
package inquiry

import "time"

// Budgets are the accepted budget ranges, in display order.
var Budgets = []string{
	"50,000 - 1 Lakh",
	"1 Lakh - 2 Lakhs",
	"2 Lakhs - 3 Lakhs",
	"3 Lakhs+",
}

// Inquiry is a stored contact form submission.
type Inquiry struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Email         string    `db:"email" json:"email"`
	Budget        string    `db:"budget" json:"budget"`
	Message       string    `db:"message" json:"message"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Plan is an itinerary recorded when a wizard session reached confirmation.
type Plan struct {
	ID            int64     `db:"id" json:"id"`
	SessionID     string    `db:"session_id" json:"session_id"`
	Destination   string    `db:"destination" json:"destination"`
	DurationLabel string    `db:"duration_label" json:"duration_label"`
	TravellerType string    `db:"traveller_type" json:"traveller_type"`
	Adults        int       `db:"adults" json:"adults"`
	Children      int       `db:"children" json:"children"`
	Rooms         int       `db:"rooms" json:"rooms"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
