package firestore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

func TestVenueToDoc_SlotLayout(t *testing.T) {
	v, err := venuedom.NewVenue("LotA", "v1", 10, 2)
	require.NoError(t, err)

	doc := venueToDoc(v)
	assert.Equal(t, "LotA", doc["name"])
	assert.Equal(t, "v1", doc["venueid"])
	assert.Equal(t, 10, doc["totalspots"])
	assert.Equal(t, 2, doc["smartspots"])

	slots, ok := doc["slots"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, slots, 2)
	assert.Equal(t, map[string]any{"slotid": 1, "status": false, "carnumber": nil}, slots[0])
	assert.Equal(t, map[string]any{"slotid": 2, "status": false, "carnumber": nil}, slots[1])
}

func TestDocToVenue_FromStoredShape(t *testing.T) {
	// Firestore hands back integers as int64 and arrays as []interface{}.
	data := map[string]any{
		"name":       "LotA",
		"venueid":    "v1",
		"totalspots": int64(10),
		"smartspots": int64(3),
		"slots": []any{
			map[string]any{"slotid": int64(1), "status": false, "carnumber": nil},
			map[string]any{"slotid": int64(2), "status": true, "carnumber": nil},
			map[string]any{"slotid": int64(3), "status": false, "carnumber": "KA-01"},
			"garbage",
		},
	}

	v, err := docToVenue("v1", data)
	require.NoError(t, err)
	assert.Equal(t, "LotA", v.Name)
	assert.Equal(t, 10, v.TotalSpots)
	assert.Equal(t, 3, v.SmartSpots)
	require.Len(t, v.Slots, 3)
	assert.Equal(t, venuedom.Slot{SlotID: 1}, v.Slots[0])
	assert.Equal(t, venuedom.Slot{SlotID: 2, Status: true}, v.Slots[1])
	require.NotNil(t, v.Slots[2].CarNumber)
	assert.Equal(t, "KA-01", *v.Slots[2].CarNumber)
}

func TestDocToVenue_Fallbacks(t *testing.T) {
	v, err := docToVenue("doc-id", map[string]any{"name": "LotB"})
	require.NoError(t, err)
	assert.Equal(t, "doc-id", v.VenueID)
	assert.NotNil(t, v.Slots)
	assert.Empty(t, v.Slots)

	_, err = docToVenue("doc-id", nil)
	assert.Error(t, err)

	_, err = docToVenue("doc-id", map[string]any{"slots": "nope"})
	assert.Error(t, err)
}

func TestDocToVenue_KeepsIDVerbatim(t *testing.T) {
	v, err := docToVenue(" v1", map[string]any{"name": " ", "venueid": " v1"})
	require.NoError(t, err)
	assert.Equal(t, " v1", v.VenueID)
	assert.Equal(t, " ", v.Name)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 7, asInt(int64(7)))
	assert.Equal(t, 7, asInt(float64(7)))
	assert.Equal(t, 7, asInt(" 7 "))
	assert.Equal(t, 0, asInt(nil))

	assert.True(t, asBool(true))
	assert.True(t, asBool("TRUE"))
	assert.True(t, asBool(int64(1)))
	assert.False(t, asBool(nil))

	assert.Nil(t, asStringPtr(nil))
	assert.Nil(t, asStringPtr("  "))
	require.NotNil(t, asStringPtr("x"))
}

// The tests below talk to the Firestore emulator and are skipped without it.
func emulatorRepo(t *testing.T) *VenueRepositoryFS {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "smartslot-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	col := fmt.Sprintf("venues_test_%d", time.Now().UnixNano())
	return NewVenueRepositoryFS(client, col)
}

func TestVenueRepositoryFS_Emulator(t *testing.T) {
	repo := emulatorRepo(t)
	ctx := context.Background()

	v, err := venuedom.NewVenue("LotA", "v1", 10, 3)
	require.NoError(t, err)

	_, err = repo.Create(ctx, v)
	require.NoError(t, err)

	_, err = repo.Create(ctx, v)
	assert.ErrorIs(t, err, venuedom.ErrConflict)

	got, err := repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = got.ToggleSlot(2)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateSlots(ctx, "v1", got.Slots))

	got, err = repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, got.Slots[1].Status)

	out, err := repo.MutateSlots(ctx, "v1", func(v *venuedom.Venue) error {
		_, err := v.ToggleSlot(2)
		return err
	})
	require.NoError(t, err)
	assert.False(t, out.Slots[1].Status)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, venuedom.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateSlots(ctx, "missing", got.Slots), venuedom.ErrNotFound)
}
