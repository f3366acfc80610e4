// Package memory holds process-local repository implementations used for local
// development and tests.
package memory

import (
	"context"
	"sync"

	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

// VenueRepositoryMem implements venue.Repository and venue.SlotMutator over a map.
type VenueRepositoryMem struct {
	mu     sync.RWMutex
	venues map[string]venuedom.Venue
}

func NewVenueRepositoryMem() *VenueRepositoryMem {
	return &VenueRepositoryMem{venues: make(map[string]venuedom.Venue)}
}

func (r *VenueRepositoryMem) GetByID(ctx context.Context, id string) (venuedom.Venue, error) {
	if err := ctx.Err(); err != nil {
		return venuedom.Venue{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.venues[id]
	if !ok {
		return venuedom.Venue{}, venuedom.ErrNotFound
	}
	return clone(v), nil
}

func (r *VenueRepositoryMem) Create(ctx context.Context, v venuedom.Venue) (venuedom.Venue, error) {
	if err := ctx.Err(); err != nil {
		return venuedom.Venue{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.venues[v.VenueID]; ok {
		return venuedom.Venue{}, venuedom.ErrConflict
	}
	r.venues[v.VenueID] = clone(v)
	return clone(v), nil
}

func (r *VenueRepositoryMem) UpdateSlots(ctx context.Context, id string, slots []venuedom.Slot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.venues[id]
	if !ok {
		return venuedom.ErrNotFound
	}
	v.Slots = venuedom.CloneSlots(slots)
	r.venues[id] = v
	return nil
}

// MutateSlots applies fn under the write lock and stores the resulting slot list.
func (r *VenueRepositoryMem) MutateSlots(
	ctx context.Context,
	id string,
	fn func(v *venuedom.Venue) error,
) (venuedom.Venue, error) {
	if err := ctx.Err(); err != nil {
		return venuedom.Venue{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.venues[id]
	if !ok {
		return venuedom.Venue{}, venuedom.ErrNotFound
	}
	v := clone(stored)
	if err := fn(&v); err != nil {
		return venuedom.Venue{}, err
	}
	stored.Slots = venuedom.CloneSlots(v.Slots)
	r.venues[id] = stored
	return clone(stored), nil
}

// Ping satisfies the connectivity check used by the CLI.
func (r *VenueRepositoryMem) Ping(context.Context) error { return nil }

func clone(v venuedom.Venue) venuedom.Venue {
	v.Slots = venuedom.CloneSlots(v.Slots)
	return v
}
