package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/openfleet/eldsim/internal/adapters/geocode"
	"github.com/openfleet/eldsim/internal/application/common"
	"github.com/openfleet/eldsim/internal/application/trip"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

// Handlers holds the application handlers exposed over HTTP.
type Handlers struct {
	simulate *trip.SimulateTripHandler
	geocoder *geocode.Client
}

// NewHandlers wires application handlers into the HTTP layer.
func NewHandlers(simulate *trip.SimulateTripHandler, geocoder *geocode.Client) *Handlers {
	return &Handlers{simulate: simulate, geocoder: geocoder}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ScheduleTrip simulates a trip and returns the full ELD schedule.
func (h *Handlers) ScheduleTrip(w http.ResponseWriter, r *http.Request) {
	var input trip.TripInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	schedule, err := h.simulate.Handle(r.Context(), trip.SimulateTripCommand{Input: input})
	if err != nil {
		var invalid *shared.InvalidTripInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		logger := common.LoggerFromContext(r.Context())
		logger.Log("ERROR", "trip simulation failed", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "trip simulation failed")
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// ReverseGeocode resolves coordinates to a human-readable place name. It
// proxies the upstream geocoder so the browser never needs the API key.
func (h *Handlers) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon must be a number")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}

	place, err := h.geocoder.ReverseLookup(r.Context(), lat, lon)
	if err != nil {
		// Upstream failures degrade to a synthesized name rather than a 5xx
		place = &geocode.Place{
			Name: shared.SynthesizeName(lat, lon),
			Lat:  lat,
			Lon:  lon,
		}
	}

	writeJSON(w, http.StatusOK, place)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
