package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	usecase "github.com/Abhishekkjainn/smartslot-api/internal/application/usecase"
	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

// Client-facing messages. Clients match on these strings, keep them stable.
const (
	msgRegistered   = "Venue registered successfully."
	msgFetched      = "Venue slots fetched successfully."
	msgSlotUpdated  = "Slot status updated successfully."
	msgMissing      = "Missing required parameters."
	msgBadTotal     = "Invalid totalspots value. It must be a positive integer."
	msgBadSmart     = "Invalid smartspots value. It must be a non-negative integer and less than or equal to totalspots."
	msgConflict     = "Venue with this ID already exists. Please use a different ID."
	msgNeedVenueID  = "Venue ID is required."
	msgNeedIDs      = "Venue ID and Slot ID are required."
	msgBadSlotID    = "Invalid Slot ID. It must be a number."
	msgNoVenueFetch = "Venue not found. Please check the venue ID."
	msgNoVenue      = "Venue not found. Please check the Venue ID."
	msgNoSlot       = "Slot not found. Please check the Slot ID."

	msgRegisterFailed = "An unexpected error occurred while registering the venue."
	msgFetchFailed    = "An unexpected error occurred while fetching venue slots."
	msgUpdateFailed   = "An unexpected error occurred while updating the slot status."
)

var msgTooManySmart = fmt.Sprintf("Invalid smartspots value. It must not exceed %d.", venuedom.MaxSmartSpots)

// VenueHandler serves the venue and slot endpoints.
type VenueHandler struct {
	uc *usecase.VenueUsecase
}

func NewVenueHandler(uc *usecase.VenueUsecase) *VenueHandler {
	return &VenueHandler{uc: uc}
}

// POST /register-venue/{name}/{totalspots}/{smartspots}/{venueid}
func (h *VenueHandler) Register(w http.ResponseWriter, r *http.Request) {
	v, err := h.uc.Register(
		r.Context(),
		pathParam(r, "name"),
		pathParam(r, "totalspots"),
		pathParam(r, "smartspots"),
		pathParam(r, "venueid"),
	)
	if err != nil {
		switch {
		case errors.Is(err, venuedom.ErrMissingParams):
			writeError(w, http.StatusBadRequest, msgMissing)
		case errors.Is(err, venuedom.ErrInvalidTotalSpots):
			writeError(w, http.StatusBadRequest, msgBadTotal)
		case errors.Is(err, venuedom.ErrInvalidSmartSpots):
			writeError(w, http.StatusBadRequest, msgBadSmart)
		case errors.Is(err, venuedom.ErrTooManySmartSpots):
			writeError(w, http.StatusBadRequest, msgTooManySmart)
		case errors.Is(err, venuedom.ErrConflict):
			writeError(w, http.StatusConflict, msgConflict)
		default:
			log.Printf("[venue] Error registering venue: %v", err)
			writeInternal(w, msgRegisterFailed, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": msgRegistered,
		"venue":   v.Summary(),
		"slots":   v.Slots,
	})
}

// GET /fetchslots/venueid={venueid}
func (h *VenueHandler) FetchSlots(w http.ResponseWriter, r *http.Request) {
	v, err := h.uc.FetchSlots(r.Context(), pathParam(r, "venueid"))
	if err != nil {
		switch {
		case errors.Is(err, venuedom.ErrMissingVenueID):
			writeError(w, http.StatusBadRequest, msgNeedVenueID)
		case errors.Is(err, venuedom.ErrNotFound):
			writeError(w, http.StatusNotFound, msgNoVenueFetch)
		default:
			log.Printf("[venue] Error fetching venue slots: %v", err)
			writeInternal(w, msgFetchFailed, err)
		}
		return
	}

	if v.Slots == nil {
		v.Slots = []venuedom.Slot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": msgFetched,
		"venue":   v,
	})
}

// POST /updateslot/venueid={venueid}/slotid={slotid}
func (h *VenueHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := h.uc.ToggleOccupancy(r.Context(), pathParam(r, "venueid"), pathParam(r, "slotid"))
	h.writeToggle(w, slot, err)
}

// GET /blockslot/venueid={venueid}/slotid={slotid}
func (h *VenueHandler) BlockSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := h.uc.ToggleBlocked(r.Context(), pathParam(r, "venueid"), pathParam(r, "slotid"))
	h.writeToggle(w, slot, err)
}

func (h *VenueHandler) writeToggle(w http.ResponseWriter, slot venuedom.Slot, err error) {
	if err != nil {
		switch {
		case errors.Is(err, venuedom.ErrMissingSlotParams):
			writeError(w, http.StatusBadRequest, msgNeedIDs)
		case errors.Is(err, venuedom.ErrInvalidSlotID):
			writeError(w, http.StatusBadRequest, msgBadSlotID)
		case errors.Is(err, venuedom.ErrNotFound):
			writeError(w, http.StatusNotFound, msgNoVenue)
		case errors.Is(err, venuedom.ErrSlotNotFound):
			writeError(w, http.StatusNotFound, msgNoSlot)
		default:
			log.Printf("[venue] Error updating slot status: %v", err)
			writeInternal(w, msgUpdateFailed, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": msgSlotUpdated,
		"slot":    slot,
	})
}

// pathParam returns the route parameter decoded exactly once. chi routes on
// r.URL.RawPath when it is set (e.g. "Lot%2FA"), and params then arrive still
// encoded; otherwise they are already decoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}
