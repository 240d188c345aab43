package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract status values stored in contracts.status.
const (
	ContractPending  = "PENDING"
	ContractAccepted = "ACCEPTED"
	ContractRejected = "REJECTED"
)

// ValidContractStatus reports whether s is one of the known contract statuses.
func ValidContractStatus(s string) bool {
	switch s {
	case ContractPending, ContractAccepted, ContractRejected:
		return true
	}
	return false
}

// Contract mirrors the `contracts` table. It records an organizer's offer
// to book an artist for a proposed event. EventID stays nil until the
// artist accepts and the organizer creates the real event, which is then
// linked back onto the contract.
type Contract struct {
	ID               uint64          `json:"id"`
	OrganizerID      uint64          `json:"organizerId"`
	OrganizerName    string          `json:"organizerName"`
	ArtistID         uint64          `json:"artistId"`
	ArtistName       string          `json:"artistName"`
	EventID          *uint64         `json:"eventId,omitempty"`
	EventName        string          `json:"eventName"`
	Venue            string          `json:"venue"`
	EventDate        string          `json:"eventDate"`
	EventTime        string          `json:"eventTime"`
	EventDescription string          `json:"eventDescription"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
	Notes            string          `json:"notes"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}
