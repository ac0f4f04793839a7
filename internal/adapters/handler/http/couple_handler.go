package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type CoupleHandler struct {
	service ports.CoupleService
}

func NewCoupleHandler(service ports.CoupleService) *CoupleHandler {
	return &CoupleHandler{
		service: service,
	}
}

type invitePartnerRequest struct {
	InvitedEmail string `json:"invited_email"`
}

func (h *CoupleHandler) InvitePartner(w http.ResponseWriter, r *http.Request) {
	userID, email, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req invitePartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.InvitedEmail == "" {
		http.Error(w, "invited_email is required", http.StatusBadRequest)
		return
	}

	inviteID, err := h.service.InvitePartner(r.Context(), userID, email, req.InvitedEmail)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyInCouple), errors.Is(err, domain.ErrPendingInviteExists):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrSelfInvite):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, "invite partner", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"invite_id": inviteID.String()})
}

// PendingInvite returns the invite waiting for the authenticated user's
// email, if any. Clients call this right after sign-in.
func (h *CoupleHandler) PendingInvite(w http.ResponseWriter, r *http.Request) {
	_, email, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	invite, err := h.service.PendingInviteByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrInviteNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, "pending invite lookup", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invite)
}

func (h *CoupleHandler) SentInvites(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	invites, err := h.service.SentInvites(r.Context(), userID)
	if err != nil {
		internalError(w, "sent invites lookup", err)
		return
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invites)
}

func (h *CoupleHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	userID, email, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	coupleID, err := h.service.AcceptInvite(r.Context(), userID, email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyInCouple):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrInviteNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrInviteExpired):
			http.Error(w, err.Error(), http.StatusGone)
		default:
			internalError(w, "accept invite", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"couple_id": coupleID})
}

func (h *CoupleHandler) CancelInvite(w http.ResponseWriter, r *http.Request) {
	inviteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid invite id", http.StatusBadRequest)
		return
	}

	if err := h.service.CancelInvite(r.Context(), inviteID); err != nil {
		if errors.Is(err, domain.ErrInviteNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, "cancel invite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoupleHandler) Membership(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	membership, err := h.service.IsInCouple(r.Context(), userID)
	if err != nil {
		internalError(w, "membership lookup", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(membership)
}

func (h *CoupleHandler) GetCouple(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	membership, err := h.service.IsInCouple(r.Context(), userID)
	if err != nil {
		internalError(w, "membership lookup", err)
		return
	}
	if !membership.InCouple {
		http.Error(w, domain.ErrNotInCouple.Error(), http.StatusNotFound)
		return
	}

	couple, err := h.service.CoupleByID(r.Context(), membership.CoupleID)
	if err != nil {
		if errors.Is(err, domain.ErrCoupleNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, "couple lookup", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(couple)
}

func (h *CoupleHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.LeaveCouple(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotInCouple), errors.Is(err, domain.ErrCoupleNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			internalError(w, "leave couple", err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoupleHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var input ports.UpdateSettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateSettings(r.Context(), userID, input); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotInCouple), errors.Is(err, domain.ErrCoupleNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			internalError(w, "update settings", err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// internalError hides store-level failures behind a generic message;
// the real error only goes to the log.
func internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
}
