// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a ticket booking commits. It
// carries enough information for downstream consumers to notify the
// guest or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	UserName    string `json:"user_name"`
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	Tickets     int    `json:"tickets"`
	QRCode      string `json:"qr_code"`
	ConfirmedAt string `json:"confirmed_at"`
}
