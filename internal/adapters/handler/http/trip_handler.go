package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type TripHandler struct {
	service ports.TripService
}

func NewTripHandler(service ports.TripService) *TripHandler {
	return &TripHandler{
		service: service,
	}
}

type createTripRequest struct {
	Name            string                 `json:"name"`
	Year            int                    `json:"year"`
	MainDestination string                 `json:"main_destination"`
	Status          domain.TripStatus      `json:"status"`
	EstimatedPeriod domain.EstimatedPeriod `json:"estimated_period"`
	Description     string                 `json:"description"`
}

type updateTripRequest struct {
	Name            *string                 `json:"name"`
	Year            *int                    `json:"year"`
	MainDestination *string                 `json:"main_destination"`
	Status          *domain.TripStatus      `json:"status"`
	EstimatedPeriod *domain.EstimatedPeriod `json:"estimated_period"`
	Description     *string                 `json:"description"`
}

type setTripStatusRequest struct {
	Status domain.TripStatus `json:"status"`
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.service.Create(r.Context(), userID, ports.CreateTripInput{
		Name:            req.Name,
		Year:            req.Year,
		MainDestination: req.MainDestination,
		Status:          req.Status,
		EstimatedPeriod: req.EstimatedPeriod,
		Description:     req.Description,
	})
	if err != nil {
		h.writeError(w, "create trip", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trip)
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	trips, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, "list trips", err)
		return
	}
	if trips == nil {
		trips = []*domain.Trip{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trips)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := h.tripRequest(w, r)
	if !ok {
		return
	}

	trip, err := h.service.Get(r.Context(), userID, tripID)
	if err != nil {
		h.writeError(w, "get trip", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trip)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := h.tripRequest(w, r)
	if !ok {
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.service.Update(r.Context(), userID, tripID, ports.UpdateTripInput{
		Name:            req.Name,
		Year:            req.Year,
		MainDestination: req.MainDestination,
		Status:          req.Status,
		EstimatedPeriod: req.EstimatedPeriod,
		Description:     req.Description,
	})
	if err != nil {
		h.writeError(w, "update trip", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trip)
}

func (h *TripHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := h.tripRequest(w, r)
	if !ok {
		return
	}

	var req setTripStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetStatus(r.Context(), userID, tripID, req.Status); err != nil {
		h.writeError(w, "set trip status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := h.tripRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, tripID); err != nil {
		h.writeError(w, "delete trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) tripRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid trip id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, true
}

func (h *TripHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTripNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotInCouple), errors.Is(err, domain.ErrNotCoupleMember):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrTripNameRequired), errors.Is(err, domain.ErrTripDestRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, op, err)
	}
}
