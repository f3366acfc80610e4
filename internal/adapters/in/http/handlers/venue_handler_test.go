package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhishekkjainn/smartslot-api/internal/adapters/out/memory"
	usecase "github.com/Abhishekkjainn/smartslot-api/internal/application/usecase"
	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

type brokenRepo struct{ err error }

func (b brokenRepo) GetByID(context.Context, string) (venuedom.Venue, error) {
	return venuedom.Venue{}, b.err
}

func (b brokenRepo) Create(context.Context, venuedom.Venue) (venuedom.Venue, error) {
	return venuedom.Venue{}, b.err
}

func (b brokenRepo) UpdateSlots(context.Context, string, []venuedom.Slot) error {
	return b.err
}

func newTestRouter(uc *usecase.VenueUsecase) http.Handler {
	h := NewVenueHandler(uc)
	r := chi.NewRouter()
	r.Post("/register-venue/{name}/{totalspots}/{smartspots}/{venueid}", h.Register)
	r.Get("/fetchslots/venueid={venueid}", h.FetchSlots)
	r.Post("/updateslot/venueid={venueid}/slotid={slotid}", h.UpdateSlot)
	r.Get("/blockslot/venueid={venueid}/slotid={slotid}", h.BlockSlot)
	return r
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// withParams calls fn directly with the given route params, bypassing chi's
// matcher so blank segments reach the handler.
func withParams(fn http.HandlerFunc, method string, params map[string]string) *httptest.ResponseRecorder {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req := httptest.NewRequest(method, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestVenueHandler_Scenario(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))

	rec := do(t, h, http.MethodPost, "/register-venue/LotA/10/3/v1")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"message": "Venue registered successfully.",
		"venue": {"name": "LotA", "venueid": "v1", "totalspots": 10, "smartspots": 3},
		"slots": [
			{"slotid": 1, "status": false, "carnumber": null},
			{"slotid": 2, "status": false, "carnumber": null},
			{"slotid": 3, "status": false, "carnumber": null}
		]
	}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/updateslot/venueid=v1/slotid=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Slot status updated successfully.", "slot": {"slotid": 2, "status": true, "carnumber": null}}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/updateslot/venueid=v1/slotid=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Slot status updated successfully.", "slot": {"slotid": 2, "status": false, "carnumber": null}}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/blockslot/venueid=v1/slotid=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Slot status updated successfully.", "slot": {"slotid": 1, "status": true, "carnumber": null}}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/fetchslots/venueid=v1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"message": "Venue slots fetched successfully.",
		"venue": {
			"name": "LotA", "venueid": "v1", "totalspots": 10, "smartspots": 3,
			"slots": [
				{"slotid": 1, "status": true, "carnumber": null},
				{"slotid": 2, "status": false, "carnumber": null},
				{"slotid": 3, "status": false, "carnumber": null}
			]
		}
	}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/blockslot/venueid=v1/slotid=5")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Slot not found. Please check the Slot ID."}`, rec.Body.String())
}

func TestVenueHandler_RegisterErrors(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/register-venue/LotA/10/3/v1").Code)

	tests := []struct {
		name   string
		target string
		code   int
		msg    string
	}{
		{"zero total", "/register-venue/LotB/0/0/v2", http.StatusBadRequest, msgBadTotal},
		{"non numeric total", "/register-venue/LotB/ten/0/v2", http.StatusBadRequest, msgBadTotal},
		{"smart above total", "/register-venue/LotB/5/6/v2", http.StatusBadRequest, msgBadSmart},
		{"negative smart", "/register-venue/LotB/5/-1/v2", http.StatusBadRequest, msgBadSmart},
		{"duplicate id", "/register-venue/Other/4/2/v1", http.StatusConflict, msgConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, `{"error": "`+tt.msg+`"}`, rec.Body.String())
		})
	}
}

func TestVenueHandler_MissingParams(t *testing.T) {
	h := NewVenueHandler(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))

	rec := withParams(h.Register, http.MethodPost, map[string]string{
		"name": "", "totalspots": "10", "smartspots": "3", "venueid": "v1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Missing required parameters."}`, rec.Body.String())

	rec = withParams(h.FetchSlots, http.MethodGet, map[string]string{"venueid": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Venue ID is required."}`, rec.Body.String())

	rec = withParams(h.UpdateSlot, http.MethodPost, map[string]string{"venueid": "v1", "slotid": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Venue ID and Slot ID are required."}`, rec.Body.String())

	rec = withParams(h.BlockSlot, http.MethodGet, map[string]string{"venueid": "", "slotid": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Venue ID and Slot ID are required."}`, rec.Body.String())
}

func TestVenueHandler_ToggleErrors(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/register-venue/LotA/10/3/v1").Code)

	rec := do(t, h, http.MethodPost, "/updateslot/venueid=v1/slotid=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid Slot ID. It must be a number."}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/updateslot/venueid=nope/slotid=1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Venue not found. Please check the Venue ID."}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/fetchslots/venueid=nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Venue not found. Please check the venue ID."}`, rec.Body.String())
}

func TestVenueHandler_EncodedName(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))

	tests := []struct {
		target, name, venueID string
	}{
		{"/register-venue/Lot%20A/2/1/v9", "Lot A", "v9"},
		{"/register-venue/Lot%2FA/2/1/v%2F8", "Lot/A", "v/8"},
		{"/register-venue/a%2541/10/3/v%2541", "a%41", "v%41"},
		{"/register-venue/%20/2/1/%20v1", " ", " v1"},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodPost, tt.target)
		require.Equal(t, http.StatusCreated, rec.Code, tt.target)

		var body struct {
			Venue struct {
				Name    string `json:"name"`
				VenueID string `json:"venueid"`
			} `json:"venue"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.name, body.Venue.Name, tt.target)
		assert.Equal(t, tt.venueID, body.Venue.VenueID, tt.target)
	}

	// decoded once: "v%41" and "vA" are different venues
	rec := do(t, h, http.MethodGet, "/fetchslots/venueid=vA")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/fetchslots/venueid=v%2541")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVenueHandler_SmartSpotsLimit(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))

	rec := do(t, h, http.MethodPost, "/register-venue/L/9000000000000/9000000000000/v")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid smartspots value. It must not exceed 10000."}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/fetchslots/venueid=v")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueHandler_SlotIDMustBeWholeNumber(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(memory.NewVenueRepositoryMem()))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/register-venue/LotA/10/3/v1").Code)

	for _, target := range []string{
		"/updateslot/venueid=v1/slotid=2x",
		"/blockslot/venueid=v1/slotid=2x",
	} {
		method := http.MethodPost
		if target[1] == 'b' {
			method = http.MethodGet
		}
		rec := do(t, h, method, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.JSONEq(t, `{"error": "Invalid Slot ID. It must be a number."}`, rec.Body.String(), target)
	}
}

func TestVenueHandler_StoreFailure(t *testing.T) {
	h := newTestRouter(usecase.NewVenueUsecase(brokenRepo{err: errors.New("store unavailable")}))

	tests := []struct {
		method, target, msg string
	}{
		{http.MethodPost, "/register-venue/LotA/10/3/v1", msgRegisterFailed},
		{http.MethodGet, "/fetchslots/venueid=v1", msgFetchFailed},
		{http.MethodPost, "/updateslot/venueid=v1/slotid=1", msgUpdateFailed},
		{http.MethodGet, "/blockslot/venueid=v1/slotid=1", msgUpdateFailed},
	}
	for _, tt := range tests {
		rec := do(t, h, tt.method, tt.target)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tt.target)
		assert.JSONEq(t, `{"error": "`+tt.msg+`", "details": "store unavailable"}`, rec.Body.String(), tt.target)
	}
}

func TestDocs(t *testing.T) {
	rec := httptest.NewRecorder()
	Docs(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>API Documentation</title>")
	assert.Contains(t, body, "POST /register-venue/:name/:totalspots/:smartspots/:venueid")
	assert.Contains(t, body, "GET /blockslot/venueid=:venueid/slotid=:slotid")
	assert.Contains(t, body, "Slot not found. Please check the Slot ID.")
}
