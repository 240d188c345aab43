package model

import "time"

// Booking status values stored in bookings.status.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingRefunded  = "REFUNDED"
)

// Booking mirrors the `bookings` table. QRCode is the redemption code a
// guest presents at the door; it carries a unique constraint.
//
// A booking row is only ever inserted in the same transaction that
// decrements the event's available ticket count.
type Booking struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	UserName    string    `json:"userName"`
	EventID     uint64    `json:"eventId"`
	Tickets     int       `json:"tickets"`
	QRCode      string    `json:"qrCode"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"bookingDate"`
}
