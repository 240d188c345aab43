package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRedemptionCode builds the unique code stored on a booking and shown
// as a QR at event entry. Uniqueness comes from the random UUID; the
// event id suffix makes codes visually distinguishable per event. The
// bookings table still carries a unique constraint as a backstop.
func NewRedemptionCode(eventID uint64) string {
	return fmt.Sprintf("QR-%s-%d", uuid.NewString(), eventID)
}
