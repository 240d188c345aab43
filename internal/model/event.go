package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event status values stored in events.status.
const (
	EventUpcoming  = "UPCOMING"
	EventCompleted = "COMPLETED"
	EventCancelled = "CANCELLED"
)

// ValidEventStatus reports whether s is one of the known event statuses.
func ValidEventStatus(s string) bool {
	switch s {
	case EventUpcoming, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Event mirrors the `events` table. The invariant
// 0 <= AvailableTickets <= TotalTickets holds at all times; the booking
// path enforces it with a conditional decrement.
//
// Date is kept as a plain "YYYY-MM-DD" string (DATE column) and Time as a
// display string, matching what clients send and render. Price is a
// DECIMAL(10,2) column.
type Event struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	Date             string          `json:"date"`
	Time             string          `json:"time"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	Emoji            string          `json:"emoji,omitempty"`
	TotalTickets     int             `json:"totalTickets"`
	AvailableTickets int             `json:"availableTickets"`
	Status           string          `json:"status"`
	OrganizerID      uint64          `json:"organizerId"`
	OrganizerName    string          `json:"organizerName"`
	MusicianID       *uint64         `json:"musicianId,omitempty"`
	MusicianName     *string         `json:"musicianName,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}
