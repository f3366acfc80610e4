package usecase

import (
	"context"
	"strconv"
	"strings"

	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

// ToggleKind names the endpoint a slot toggle came through. Both kinds flip
// Slot.Status.
type ToggleKind string

const (
	ToggleOccupancy ToggleKind = "occupancy"
	ToggleBlocked   ToggleKind = "blocked"
)

// VenueRecorder receives the outcome of every venue operation.
type VenueRecorder interface {
	RecordVenueOperation(operation string, err error)
}

type VenueUsecase struct {
	repo venuedom.Repository

	// atomicToggles routes toggles through venue.SlotMutator when the
	// repository implements it.
	atomicToggles bool
	recorder      VenueRecorder
}

type VenueOption func(*VenueUsecase)

// WithAtomicToggles enables transactional read-modify-write for slot toggles.
func WithAtomicToggles(on bool) VenueOption {
	return func(u *VenueUsecase) { u.atomicToggles = on }
}

func WithRecorder(r VenueRecorder) VenueOption {
	return func(u *VenueUsecase) { u.recorder = r }
}

func NewVenueUsecase(repo venuedom.Repository, opts ...VenueOption) *VenueUsecase {
	u := &VenueUsecase{repo: repo}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Commands

// Register validates the raw path parameters and creates the venue with its
// full slot list in one write.
func (u *VenueUsecase) Register(ctx context.Context, name, totalSpots, smartSpots, venueID string) (v venuedom.Venue, err error) {
	defer func() { u.record("register", err) }()

	// Name and venueID are stored exactly as received.
	if name == "" || totalSpots == "" || smartSpots == "" || venueID == "" {
		return venuedom.Venue{}, venuedom.ErrMissingParams
	}

	total, err := strconv.Atoi(strings.TrimSpace(totalSpots))
	if err != nil || total <= 0 {
		return venuedom.Venue{}, venuedom.ErrInvalidTotalSpots
	}
	smart, err := strconv.Atoi(strings.TrimSpace(smartSpots))
	if err != nil || smart < 0 || smart > total {
		return venuedom.Venue{}, venuedom.ErrInvalidSmartSpots
	}
	if smart > venuedom.MaxSmartSpots {
		return venuedom.Venue{}, venuedom.ErrTooManySmartSpots
	}

	v, err = venuedom.NewVenue(name, venueID, total, smart)
	if err != nil {
		return venuedom.Venue{}, err
	}
	return u.repo.Create(ctx, v)
}

// ToggleOccupancy flips the status of one slot (POST /updateslot).
func (u *VenueUsecase) ToggleOccupancy(ctx context.Context, venueID, slotID string) (venuedom.Slot, error) {
	return u.toggle(ctx, ToggleOccupancy, venueID, slotID)
}

// ToggleBlocked flips the status of one slot (GET /blockslot).
func (u *VenueUsecase) ToggleBlocked(ctx context.Context, venueID, slotID string) (venuedom.Slot, error) {
	return u.toggle(ctx, ToggleBlocked, venueID, slotID)
}

// Queries

// FetchSlots returns the stored venue including its slot list.
func (u *VenueUsecase) FetchSlots(ctx context.Context, venueID string) (v venuedom.Venue, err error) {
	defer func() { u.record("fetch_slots", err) }()

	if venueID == "" {
		return venuedom.Venue{}, venuedom.ErrMissingVenueID
	}
	return u.repo.GetByID(ctx, venueID)
}

// ------------------------------------------------------------
// internal
// ------------------------------------------------------------

func (u *VenueUsecase) toggle(ctx context.Context, kind ToggleKind, venueID, slotID string) (slot venuedom.Slot, err error) {
	defer func() { u.record("toggle_"+string(kind), err) }()

	if venueID == "" || slotID == "" {
		return venuedom.Slot{}, venuedom.ErrMissingSlotParams
	}
	n, err := strconv.Atoi(strings.TrimSpace(slotID))
	if err != nil {
		return venuedom.Slot{}, venuedom.ErrInvalidSlotID
	}

	if u.atomicToggles {
		if m, ok := u.repo.(venuedom.SlotMutator); ok {
			_, err = m.MutateSlots(ctx, venueID, func(v *venuedom.Venue) error {
				s, err := v.ToggleSlot(n)
				slot = s
				return err
			})
			if err != nil {
				return venuedom.Slot{}, err
			}
			return slot, nil
		}
	}

	// read → flip → overwrite; concurrent toggles are last-writer-wins.
	v, err := u.repo.GetByID(ctx, venueID)
	if err != nil {
		return venuedom.Slot{}, err
	}
	slot, err = v.ToggleSlot(n)
	if err != nil {
		return venuedom.Slot{}, err
	}
	if err := u.repo.UpdateSlots(ctx, venueID, v.Slots); err != nil {
		return venuedom.Slot{}, err
	}
	return slot, nil
}

func (u *VenueUsecase) record(op string, err error) {
	if u.recorder != nil {
		u.recorder.RecordVenueOperation(op, err)
	}
}
