package venue

import (
	"context"
	"errors"
)

// Store errors (contract-level).
var (
	ErrNotFound = errors.New("venue: not found")
	ErrConflict = errors.New("venue: already exists")
)

// Repository is the document-store port for venues.
type Repository interface {
	// GetByID returns ErrNotFound when no venue is stored under id.
	GetByID(ctx context.Context, id string) (Venue, error)

	// Create stores v under v.VenueID and returns ErrConflict if the key is taken.
	Create(ctx context.Context, v Venue) (Venue, error)

	// UpdateSlots overwrites the whole slot list of venue id.
	UpdateSlots(ctx context.Context, id string, slots []Slot) error
}

// SlotMutator is implemented by stores that can apply a read-modify-write of a
// venue atomically.
type SlotMutator interface {
	MutateSlots(ctx context.Context, id string, fn func(v *Venue) error) (Venue, error)
}
