package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/pkg/signage"
)

// Handler handles HTTP requests
type Handler struct {
	client signage.Client
}

// NewHandler creates a new HTTP handler
func NewHandler(client signage.Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/board", h.handleBoard).Methods("GET")
	r.HandleFunc("/departures", h.handleDepartures).Methods("GET")
	r.HandleFunc("/next/{direction}", h.handleNext).Methods("GET")
	r.HandleFunc("/highlight", h.handleHighlight).Methods("GET")
	r.HandleFunc("/stops", h.handleStops).Methods("GET")
	r.HandleFunc("/platforms", h.handlePlatforms).Methods("GET")
	r.HandleFunc("/platforms/{platform}/trips", h.handlePlatformTrips).Methods("GET")
	r.HandleFunc("/status", h.handleStatus).Methods("GET")
	r.HandleFunc("/clock/time", h.handleClockTime).Methods("POST")
	r.HandleFunc("/clock/date", h.handleClockDate).Methods("POST")
	r.HandleFunc("/clock/apply", h.handleClockApply).Methods("POST")
	r.HandleFunc("/clock/now", h.handleClockNow).Methods("POST")
	r.HandleFunc("/clock/toggle", h.handleClockToggle).Methods("POST")
	r.HandleFunc("/refresh", h.handleRefresh).Methods("POST")
	r.HandleFunc("/gtfs-rt/departures", h.handleGTFSRealtime).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data    interface{} `json:"data"`
	Updated string      `json:"updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ClockRequest carries editor values for the clock endpoints
type ClockRequest struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "signage-go",
		"readme": "Visit https://github.com/jusunglee/signage-go for more info",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.client.GetBoard()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeData(w, board)
}

func (h *Handler) handleDepartures(w http.ResponseWriter, r *http.Request) {
	count := 0
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n <= 0 {
			h.writeError(w, "Invalid count parameter", http.StatusBadRequest)
			return
		}
		count = n
	}

	departures, err := h.client.GetUpcoming(count)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeData(w, departures)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	direction, err := models.ParseDirection(mux.Vars(r)["direction"])
	if err != nil {
		h.writeError(w, err.Error(), http.StatusNotFound)
		return
	}

	departures, err := h.client.GetNextGroup(direction)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeData(w, departures)
}

func (h *Handler) handleHighlight(w http.ResponseWriter, r *http.Request) {
	highlight, err := h.client.GetHighlight()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeData(w, highlight)
}

func (h *Handler) handleStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.client.GetStops()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, Response{Data: stops})
}

func (h *Handler) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.client.GetPlatforms()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeData(w, platforms)
}

func (h *Handler) handlePlatformTrips(w http.ResponseWriter, r *http.Request) {
	platform := mux.Vars(r)["platform"]

	trips, err := h.client.GetTripsByPlatform(platform)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.writeData(w, trips)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.client.GetStatus()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeData(w, status)
}

func (h *Handler) handleClockTime(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeClock(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, Response{Data: h.client.EditTime(req.Time)})
}

func (h *Handler) handleClockDate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeClock(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, Response{Data: h.client.EditDate(req.Date)})
}

func (h *Handler) handleClockApply(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeClock(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, Response{Data: h.client.ApplyClock(req.Time, req.Date)})
}

func (h *Handler) handleClockNow(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, Response{Data: h.client.ResetToNow()})
}

func (h *Handler) handleClockToggle(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, Response{Data: h.client.ToggleLive()})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	h.client.Refresh()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(Response{Data: h.client.GetState()})
}

func (h *Handler) handleGTFSRealtime(w http.ResponseWriter, r *http.Request) {
	data, err := h.client.GetGTFSRealtime()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	w.Write(data)
}

func (h *Handler) decodeClock(w http.ResponseWriter, r *http.Request) (ClockRequest, bool) {
	var req ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	response := Response{Data: data}
	if lastUpdate := h.client.GetLastUpdate(); !lastUpdate.IsZero() {
		response.Updated = lastUpdate.Format(time.RFC3339)
	}
	h.writeJSON(w, response)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
