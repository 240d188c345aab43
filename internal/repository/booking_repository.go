package repository

import (
	"context"
	"database/sql"

	"github.com/gigstage/music-event-backend/internal/model"
)

// BookingRepo provides storage for ticket bookings. Inserts only happen
// through CreateTx so a booking row and its event's inventory decrement
// always commit or roll back together.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = "id, user_id, user_name, event_id, tickets, qr_code, status, booking_date"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.UserName, &b.EventID, &b.Tickets,
		&b.QRCode, &b.Status, &b.BookingDate)
	return b, err
}

// CreateTx inserts a booking within the scope of an existing transaction
// and populates the generated ID and booking_date on b. The caller must
// commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (user_id, user_name, event_id, tickets, qr_code, status) VALUES (?,?,?,?,?,?)",
		b.UserID, b.UserName, b.EventID, b.Tickets, b.QRCode, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Read back within the same tx to pick up booking_date.
	row := tx.QueryRowContext(ctx, "SELECT "+bookingCols+" FROM bookings WHERE id=?", b.ID)
	created, err := scanBooking(row)
	if err != nil {
		return err
	}
	*b = created
	return nil
}

// GetByID fetches a booking by id, mapping a miss to ErrNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+bookingCols+" FROM bookings WHERE id=?", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	return b, err
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE user_id=? ORDER BY booking_date DESC, id DESC",
		userID)
}

// ListByEvent returns all bookings placed against one event.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE event_id=? ORDER BY booking_date DESC, id DESC",
		eventID)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
