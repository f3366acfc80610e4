package venue

import "errors"

// MaxSmartSpots bounds the slot list so a venue document stays well under the
// 1 MiB Firestore document limit.
const MaxSmartSpots = 10000

// ---------------------------
// Domain errors
// ---------------------------

// Input errors.
var (
	ErrMissingParams     = errors.New("venue: missing required parameters")
	ErrInvalidTotalSpots = errors.New("venue: invalid totalspots")
	ErrInvalidSmartSpots = errors.New("venue: invalid smartspots")
	ErrTooManySmartSpots = errors.New("venue: smartspots exceeds limit")
	ErrMissingVenueID    = errors.New("venue: venueid is required")
	ErrMissingSlotParams = errors.New("venue: venueid and slotid are required")
	ErrInvalidSlotID     = errors.New("venue: invalid slotid")
)

// ErrSlotNotFound is returned when a venue has no slot with the requested id.
var ErrSlotNotFound = errors.New("venue: slot not found")

// ----------------------------------------
// Entities
// ----------------------------------------

// Slot is one smart parking position inside a venue.
// CarNumber is carried on the wire as null; no operation assigns it.
type Slot struct {
	SlotID    int     `json:"slotid"`
	Status    bool    `json:"status"`
	CarNumber *string `json:"carnumber"`
}

// Venue is a parking location together with its smart slots.
type Venue struct {
	Name       string `json:"name"`
	VenueID    string `json:"venueid"`
	TotalSpots int    `json:"totalspots"`
	SmartSpots int    `json:"smartspots"`
	Slots      []Slot `json:"slots"`
}

// ----------------------------------------
// Constructor
// ----------------------------------------

// NewVenue builds a venue with smartSpots available slots numbered from 1.
func NewVenue(name, venueID string, totalSpots, smartSpots int) (Venue, error) {
	v := Venue{
		Name:       name,
		VenueID:    venueID,
		TotalSpots: totalSpots,
		SmartSpots: smartSpots,
	}
	if err := v.validate(); err != nil {
		return Venue{}, err
	}
	v.Slots = NewSlots(smartSpots)
	return v, nil
}

// NewSlots returns n available slots with ids 1..n.
func NewSlots(n int) []Slot {
	if n <= 0 {
		return []Slot{}
	}
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{SlotID: i + 1, Status: false, CarNumber: nil}
	}
	return slots
}

// ----------------------------------------
// Behavior
// ----------------------------------------

// FindSlot returns the index of the first slot with the given id, or -1.
func (v Venue) FindSlot(slotID int) int {
	for i, s := range v.Slots {
		if s.SlotID == slotID {
			return i
		}
	}
	return -1
}

// ToggleSlot flips the status of the slot with the given id in place and
// returns the updated slot.
func (v *Venue) ToggleSlot(slotID int) (Slot, error) {
	idx := v.FindSlot(slotID)
	if idx < 0 {
		return Slot{}, ErrSlotNotFound
	}
	v.Slots[idx].Status = !v.Slots[idx].Status
	return v.Slots[idx], nil
}

// Summary returns a copy of the venue without its slot list.
func (v Venue) Summary() Summary {
	return Summary{
		Name:       v.Name,
		VenueID:    v.VenueID,
		TotalSpots: v.TotalSpots,
		SmartSpots: v.SmartSpots,
	}
}

// Summary is the venue header returned by registration.
type Summary struct {
	Name       string `json:"name"`
	VenueID    string `json:"venueid"`
	TotalSpots int    `json:"totalspots"`
	SmartSpots int    `json:"smartspots"`
}

// CloneSlots returns a deep copy of slots.
func CloneSlots(slots []Slot) []Slot {
	if slots == nil {
		return nil
	}
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = s
		if s.CarNumber != nil {
			c := *s.CarNumber
			out[i].CarNumber = &c
		}
	}
	return out
}

// ----------------------------------------
// Validation
// ----------------------------------------

func (v Venue) validate() error {
	if v.Name == "" || v.VenueID == "" {
		return ErrMissingParams
	}
	if v.TotalSpots <= 0 {
		return ErrInvalidTotalSpots
	}
	if v.SmartSpots < 0 || v.SmartSpots > v.TotalSpots {
		return ErrInvalidSmartSpots
	}
	if v.SmartSpots > MaxSmartSpots {
		return ErrTooManySmartSpots
	}
	return nil
}
