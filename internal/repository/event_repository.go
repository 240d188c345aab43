package repository

import (
	"context"
	"database/sql"

	"github.com/gigstage/music-event-backend/internal/model"
)

// EventRepo provides CRUD operations for events plus the transactional
// helpers used by the booking flow. The available_tickets column is only
// ever reduced through DecrementTicketsTx, whose conditional update keeps
// 0 <= available_tickets <= total_tickets under concurrent bookings.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

// eventCols selects the event row with the DATE column rendered as
// YYYY-MM-DD, matching what clients send on create.
const eventCols = `id, name, description, location, DATE_FORMAT(date,'%Y-%m-%d'), time, price,
	category, emoji, total_tickets, available_tickets, status,
	organizer_id, organizer_name, musician_id, musician_name, created_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	var musicianID sql.NullInt64
	var musicianName sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &e.Date, &e.Time, &e.Price,
		&e.Category, &e.Emoji, &e.TotalTickets, &e.AvailableTickets, &e.Status,
		&e.OrganizerID, &e.OrganizerName, &musicianID, &musicianName, &e.CreatedAt,
	)
	if err != nil {
		return e, err
	}
	if musicianID.Valid {
		id := uint64(musicianID.Int64)
		e.MusicianID = &id
	}
	if musicianName.Valid {
		n := musicianName.String
		e.MusicianName = &n
	}
	return e, nil
}

// Create inserts an event and populates the generated ID and server-side
// defaults on e. Status defaults to UPCOMING when unset.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	if e.Status == "" {
		e.Status = model.EventUpcoming
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events
		 (name, description, location, date, time, price, category, emoji,
		  total_tickets, available_tickets, status,
		  organizer_id, organizer_name, musician_id, musician_name)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.Name, e.Description, e.Location, e.Date, e.Time, e.Price, e.Category, e.Emoji,
		e.TotalTickets, e.AvailableTickets, e.Status,
		e.OrganizerID, e.OrganizerName, e.MusicianID, e.MusicianName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Read back to pick up created_at.
	created, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = created
	return nil
}

// GetByID fetches a single event, mapping a miss to ErrNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+eventCols+" FROM events WHERE id=?", id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

// List returns every event in chronological order.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventCols+" FROM events ORDER BY date, time")
}

// ListUpcoming returns UPCOMING events whose date is today or later.
func (r *EventRepo) ListUpcoming(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx,
		"SELECT "+eventCols+" FROM events WHERE status=? AND date >= CURDATE() ORDER BY date, time",
		model.EventUpcoming)
}

// ListByOrganizer returns all events created by one organizer.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Event, error) {
	return r.list(ctx,
		"SELECT "+eventCols+" FROM events WHERE organizer_id=? ORDER BY date, time",
		organizerID)
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update replaces the mutable fields of an event. Organizer identity and
// created_at are deliberately not part of the statement. Returns
// ErrNotFound when no row has the given id.
func (r *EventRepo) Update(ctx context.Context, id uint64, e model.Event) (model.Event, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET
		 name=?, description=?, location=?, date=?, time=?, price=?, category=?, emoji=?,
		 total_tickets=?, available_tickets=?, status=?, musician_id=?, musician_name=?
		 WHERE id=?`,
		e.Name, e.Description, e.Location, e.Date, e.Time, e.Price, e.Category, e.Emoji,
		e.TotalTickets, e.AvailableTickets, e.Status, e.MusicianID, e.MusicianName, id)
	if err != nil {
		return model.Event{}, err
	}
	if _, err := res.RowsAffected(); err != nil {
		return model.Event{}, err
	}
	// RowsAffected is 0 both for a missing row and for a no-op update, so
	// existence is confirmed by the read-back.
	return r.GetByID(ctx, id)
}

// Delete removes an event by id. Missing rows map to ErrNotFound.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetForUpdateTx loads an event inside tx with a row lock, serializing
// concurrent bookings against the same event.
func (r *EventRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Event, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+eventCols+" FROM events WHERE id=? FOR UPDATE", id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

// DecrementTicketsTx reduces available_tickets by n inside tx. The
// WHERE guard re-checks availability so the invariant holds even if the
// caller's earlier read went stale; zero affected rows means the event
// vanished or the count dropped below n, reported as
// ErrInsufficientTickets.
func (r *EventRepo) DecrementTicketsTx(ctx context.Context, tx *sql.Tx, id uint64, n int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE events SET available_tickets = available_tickets - ? WHERE id=? AND available_tickets >= ?",
		n, id, n)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientTickets
	}
	return nil
}
