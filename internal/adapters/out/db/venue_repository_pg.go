package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

// VenueSchema creates the venues table. Slots are kept as one JSONB array so a
// toggle rewrites the whole list, same as the document store.
const VenueSchema = `
CREATE TABLE IF NOT EXISTS venues (
  venueid    TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  totalspots INTEGER NOT NULL CHECK (totalspots > 0),
  smartspots INTEGER NOT NULL CHECK (smartspots >= 0 AND smartspots <= totalspots),
  slots      JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// VenueRepositoryPG implements venue.Repository on PostgreSQL.
type VenueRepositoryPG struct {
	DB *sql.DB
}

func NewVenueRepositoryPG(db *sql.DB) *VenueRepositoryPG {
	return &VenueRepositoryPG{DB: db}
}

// EnsureSchema applies VenueSchema.
func (r *VenueRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, VenueSchema); err != nil {
		return fmt.Errorf("venue: ensure schema: %w", err)
	}
	return nil
}

// ==============================
// Repository implementation
// ==============================

func (r *VenueRepositoryPG) GetByID(ctx context.Context, id string) (venuedom.Venue, error) {
	const q = `
SELECT venueid, name, totalspots, smartspots, slots
FROM venues
WHERE venueid = $1`
	v, err := scanVenue(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return venuedom.Venue{}, venuedom.ErrNotFound
		}
		return venuedom.Venue{}, fmt.Errorf("venue: failed to get %q: %w", id, err)
	}
	return v, nil
}

func (r *VenueRepositoryPG) Create(ctx context.Context, v venuedom.Venue) (venuedom.Venue, error) {
	slotsJSON, err := encodeSlots(v.Slots)
	if err != nil {
		return venuedom.Venue{}, err
	}

	const q = `
INSERT INTO venues (venueid, name, totalspots, smartspots, slots)
VALUES ($1, $2, $3, $4, $5::jsonb)`
	if _, err := r.DB.ExecContext(ctx, q, v.VenueID, v.Name, v.TotalSpots, v.SmartSpots, slotsJSON); err != nil {
		if isUniqueViolation(err) {
			return venuedom.Venue{}, venuedom.ErrConflict
		}
		return venuedom.Venue{}, fmt.Errorf("venue: failed to create %q: %w", v.VenueID, err)
	}
	return v, nil
}

func (r *VenueRepositoryPG) UpdateSlots(ctx context.Context, id string, slots []venuedom.Slot) error {
	slotsJSON, err := encodeSlots(slots)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, `UPDATE venues SET slots = $2::jsonb WHERE venueid = $1`, id, slotsJSON)
	if err != nil {
		return fmt.Errorf("venue: failed to update slots of %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return venuedom.ErrNotFound
	}
	return nil
}

// MutateSlots locks the row with SELECT ... FOR UPDATE for the duration of fn.
func (r *VenueRepositoryPG) MutateSlots(
	ctx context.Context,
	id string,
	fn func(v *venuedom.Venue) error,
) (venuedom.Venue, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return venuedom.Venue{}, err
	}
	defer tx.Rollback()

	const q = `
SELECT venueid, name, totalspots, smartspots, slots
FROM venues
WHERE venueid = $1
FOR UPDATE`
	v, err := scanVenue(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return venuedom.Venue{}, venuedom.ErrNotFound
		}
		return venuedom.Venue{}, fmt.Errorf("venue: failed to lock %q: %w", id, err)
	}

	if err := fn(&v); err != nil {
		return venuedom.Venue{}, err
	}

	slotsJSON, err := encodeSlots(v.Slots)
	if err != nil {
		return venuedom.Venue{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE venues SET slots = $2::jsonb WHERE venueid = $1`, id, slotsJSON); err != nil {
		return venuedom.Venue{}, fmt.Errorf("venue: failed to update slots of %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return venuedom.Venue{}, err
	}
	return v, nil
}

// Ping checks the connection.
func (r *VenueRepositoryPG) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// ==============================
// Helpers
// ==============================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (venuedom.Venue, error) {
	var (
		v        venuedom.Venue
		rawSlots []byte
	)
	if err := row.Scan(&v.VenueID, &v.Name, &v.TotalSpots, &v.SmartSpots, &rawSlots); err != nil {
		return venuedom.Venue{}, err
	}
	slots, err := decodeSlots(rawSlots)
	if err != nil {
		return venuedom.Venue{}, fmt.Errorf("venue %s: %w", v.VenueID, err)
	}
	v.Slots = slots
	return v, nil
}

func encodeSlots(slots []venuedom.Slot) (string, error) {
	if slots == nil {
		slots = []venuedom.Slot{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("venue: encode slots: %w", err)
	}
	return string(b), nil
}

func decodeSlots(raw []byte) ([]venuedom.Slot, error) {
	slots := []venuedom.Slot{}
	if len(raw) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return slots, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
