package repository

import (
	"context"
	"database/sql"

	"github.com/gigstage/music-event-backend/internal/model"
)

// ContractRepo provides storage for artist-booking contracts. A contract
// starts PENDING; the artist moves it to ACCEPTED or REJECTED, and after
// acceptance the organizer links the created event onto it.
type ContractRepo struct{ db *sql.DB }

func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{db: db} }

const contractCols = `id, organizer_id, organizer_name, artist_id, artist_name, event_id,
	event_name, venue, event_date, event_time, event_description,
	payment_amount, notes, status, created_at, updated_at`

func scanContract(row interface{ Scan(...any) error }) (model.Contract, error) {
	var c model.Contract
	var eventID sql.NullInt64
	var updatedAt sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizerID, &c.OrganizerName, &c.ArtistID, &c.ArtistName, &eventID,
		&c.EventName, &c.Venue, &c.EventDate, &c.EventTime, &c.EventDescription,
		&c.PaymentAmount, &c.Notes, &c.Status, &c.CreatedAt, &updatedAt,
	)
	if err != nil {
		return c, err
	}
	if eventID.Valid {
		id := uint64(eventID.Int64)
		c.EventID = &id
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		c.UpdatedAt = &t
	}
	return c, nil
}

// Create inserts a contract and populates the generated ID and defaults
// on c. Status defaults to PENDING when unset; event_id stays NULL until
// acceptance.
func (r *ContractRepo) Create(ctx context.Context, c *model.Contract) error {
	if c.Status == "" {
		c.Status = model.ContractPending
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contracts
		 (organizer_id, organizer_name, artist_id, artist_name,
		  event_name, venue, event_date, event_time, event_description,
		  payment_amount, notes, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.OrganizerID, c.OrganizerName, c.ArtistID, c.ArtistName,
		c.EventName, c.Venue, c.EventDate, c.EventTime, c.EventDescription,
		c.PaymentAmount, c.Notes, c.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*c = created
	return nil
}

// GetByID fetches a contract by id, mapping a miss to ErrNotFound.
func (r *ContractRepo) GetByID(ctx context.Context, id uint64) (model.Contract, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+contractCols+" FROM contracts WHERE id=?", id)
	c, err := scanContract(row)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// ListByArtist returns all contracts offered to one artist, newest first.
func (r *ContractRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Contract, error) {
	return r.list(ctx,
		"SELECT "+contractCols+" FROM contracts WHERE artist_id=? ORDER BY created_at DESC",
		artistID)
}

// ListByOrganizer returns all contracts an organizer has proposed.
func (r *ContractRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Contract, error) {
	return r.list(ctx,
		"SELECT "+contractCols+" FROM contracts WHERE organizer_id=? ORDER BY created_at DESC",
		organizerID)
}

// ListPendingByArtist returns an artist's contracts still awaiting a
// decision.
func (r *ContractRepo) ListPendingByArtist(ctx context.Context, artistID uint64) ([]model.Contract, error) {
	return r.list(ctx,
		"SELECT "+contractCols+" FROM contracts WHERE artist_id=? AND status=? ORDER BY created_at DESC",
		artistID, model.ContractPending)
}

func (r *ContractRepo) list(ctx context.Context, query string, args ...any) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	contracts := make([]model.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// UpdateStatus moves a contract to the given status and stamps
// updated_at. Missing rows map to ErrNotFound. Status validation is the
// handler's job; this layer stores what it is told.
func (r *ContractRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Contract, error) {
	if err := r.touch(ctx,
		"UPDATE contracts SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		status, id); err != nil {
		return model.Contract{}, err
	}
	return r.GetByID(ctx, id)
}

// LinkEvent attaches a created event's id onto an existing contract.
func (r *ContractRepo) LinkEvent(ctx context.Context, id, eventID uint64) (model.Contract, error) {
	if err := r.touch(ctx,
		"UPDATE contracts SET event_id=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		eventID, id); err != nil {
		return model.Contract{}, err
	}
	return r.GetByID(ctx, id)
}

// touch runs an update that must target an existing row. Existence is
// checked first so a no-op update is not mistaken for a missing row.
func (r *ContractRepo) touch(ctx context.Context, query string, args ...any) error {
	var exists uint64
	last := args[len(args)-1]
	err := r.db.QueryRowContext(ctx, "SELECT id FROM contracts WHERE id=?", last).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
