package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

const defaultVenuesCollection = "venues"

// ------------------------------------------------------------
// VenueRepositoryFS
// ------------------------------------------------------------

// VenueRepositoryFS implements venue.Repository using Firestore.
// Documents live at <collection>/{venueid}.
type VenueRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

func NewVenueRepositoryFS(client *firestore.Client, collection string) *VenueRepositoryFS {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = defaultVenuesCollection
	}
	return &VenueRepositoryFS{Client: client, Collection: collection}
}

func (r *VenueRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(r.Collection)
}

// GetByID: venues/{venueid}
func (r *VenueRepositoryFS) GetByID(ctx context.Context, id string) (venuedom.Venue, error) {
	if r.Client == nil {
		return venuedom.Venue{}, errors.New("firestore client is nil")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return venuedom.Venue{}, venuedom.ErrNotFound
		}
		return venuedom.Venue{}, fmt.Errorf("venue: failed to get %q: %w", id, err)
	}
	return docToVenue(snap.Ref.ID, snap.Data())
}

// Create: venues/{venueid}, ErrConflict when the document already exists.
func (r *VenueRepositoryFS) Create(ctx context.Context, v venuedom.Venue) (venuedom.Venue, error) {
	if r.Client == nil {
		return venuedom.Venue{}, errors.New("firestore client is nil")
	}

	if _, err := r.col().Doc(v.VenueID).Create(ctx, venueToDoc(v)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return venuedom.Venue{}, venuedom.ErrConflict
		}
		return venuedom.Venue{}, fmt.Errorf("venue: failed to create %q: %w", v.VenueID, err)
	}
	return v, nil
}

// UpdateSlots overwrites the slots field only.
func (r *VenueRepositoryFS) UpdateSlots(ctx context.Context, id string, slots []venuedom.Slot) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "slots", Value: slotsToDoc(slots)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return venuedom.ErrNotFound
		}
		return fmt.Errorf("venue: failed to update slots of %q: %w", id, err)
	}
	return nil
}

// MutateSlots runs get → fn → update inside a Firestore transaction.
func (r *VenueRepositoryFS) MutateSlots(
	ctx context.Context,
	id string,
	fn func(v *venuedom.Venue) error,
) (venuedom.Venue, error) {
	if r.Client == nil {
		return venuedom.Venue{}, errors.New("firestore client is nil")
	}

	ref := r.col().Doc(id)
	var out venuedom.Venue

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return venuedom.ErrNotFound
			}
			return err
		}
		v, err := docToVenue(snap.Ref.ID, snap.Data())
		if err != nil {
			return err
		}
		if err := fn(&v); err != nil {
			return err
		}
		out = v
		return tx.Update(ref, []firestore.Update{
			{Path: "slots", Value: slotsToDoc(v.Slots)},
		})
	})
	if err != nil {
		if errors.Is(err, venuedom.ErrNotFound) || errors.Is(err, venuedom.ErrSlotNotFound) {
			return venuedom.Venue{}, err
		}
		return venuedom.Venue{}, fmt.Errorf("venue: transaction on %q failed: %w", id, err)
	}
	return out, nil
}

// ------------------------------------------------------------
// Helpers
// ------------------------------------------------------------

func venueToDoc(v venuedom.Venue) map[string]any {
	return map[string]any{
		"name":       v.Name,
		"venueid":    v.VenueID,
		"totalspots": v.TotalSpots,
		"smartspots": v.SmartSpots,
		"slots":      slotsToDoc(v.Slots),
	}
}

func slotsToDoc(slots []venuedom.Slot) []map[string]any {
	items := make([]map[string]any, 0, len(slots))
	for _, s := range slots {
		m := map[string]any{
			"slotid": s.SlotID,
			"status": s.Status,
		}
		if s.CarNumber != nil {
			m["carnumber"] = *s.CarNumber
		} else {
			m["carnumber"] = nil
		}
		items = append(items, m)
	}
	return items
}

func docToVenue(docID string, data map[string]any) (venuedom.Venue, error) {
	if data == nil {
		return venuedom.Venue{}, fmt.Errorf("empty venue document: %s", docID)
	}

	v := venuedom.Venue{
		Name:       asString(data["name"]),
		VenueID:    asString(data["venueid"]),
		TotalSpots: asInt(data["totalspots"]),
		SmartSpots: asInt(data["smartspots"]),
		Slots:      []venuedom.Slot{},
	}
	if v.VenueID == "" {
		v.VenueID = docID
	}

	switch raw := data["slots"].(type) {
	case nil:
	case []any:
		for _, e := range raw {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			v.Slots = append(v.Slots, venuedom.Slot{
				SlotID:    asInt(m["slotid"]),
				Status:    asBool(m["status"]),
				CarNumber: asStringPtr(m["carnumber"]),
			})
		}
	default:
		return venuedom.Venue{}, fmt.Errorf("venue %s: unexpected slots type %T", docID, raw)
	}

	return v, nil
}
