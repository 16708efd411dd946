package handlers

import (
	"net/http"
	"strconv"

	"agrocore/models"

	"github.com/go-chi/chi/v5"
)

// CreateOpportunityHandler handles POST /api/opportunities.
func (h *Handler) CreateOpportunityHandler(w http.ResponseWriter, r *http.Request) {
	var opp models.Opportunity
	if !h.decodeBody(w, r, &opp) {
		return
	}

	owner, err := h.Store.GetUser(r.Context(), opp.UserID)
	if err != nil {
		writeStorageError(w, err, "user not found")
		return
	}
	// Only buyers open calls for product.
	if owner.ProfileType != models.ProfileBuyer {
		writeError(w, http.StatusForbidden, "only buyers can create opportunities")
		return
	}

	if err := h.Store.CreateOpportunity(r.Context(), &opp); err != nil {
		writeStorageError(w, err, "opportunity not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"opportunityId": opp.ID})
}

// GetOpportunitiesHandler handles GET /api/opportunities. Active ones for
// everybody; ?userId= additionally includes that owner's own regardless of
// status.
func (h *Handler) GetOpportunitiesHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := strconv.Atoi(r.URL.Query().Get("userId"))

	opportunities, err := h.Store.GetOpportunities(r.Context(), ownerID)
	if err != nil {
		writeStorageError(w, err, "opportunities not found")
		return
	}

	writeJSON(w, http.StatusOK, opportunities)
}

// UpdateOpportunityStatusHandler handles PUT /api/opportunities/{opportunityId}.
// Only the owner may close or reopen their opportunity.
func (h *Handler) UpdateOpportunityStatusHandler(w http.ResponseWriter, r *http.Request) {
	oppID, err := strconv.Atoi(chi.URLParam(r, "opportunityId"))
	if err != nil || oppID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid opportunityId")
		return
	}

	var input struct {
		UserID int                      `json:"userId" validate:"required"`
		Status models.OpportunityStatus `json:"status" validate:"required,oneof=active closed"`
	}
	if !h.decodeBody(w, r, &input) {
		return
	}

	opp, err := h.Store.GetOpportunity(r.Context(), oppID)
	if err != nil {
		writeStorageError(w, err, "opportunity not found")
		return
	}
	if opp.UserID != input.UserID {
		writeError(w, http.StatusForbidden, "only the owner can change opportunity status")
		return
	}

	if err := h.Store.UpdateOpportunityStatus(r.Context(), oppID, input.Status); err != nil {
		writeStorageError(w, err, "opportunity not found")
		return
	}

	opp.Status = input.Status
	writeJSON(w, http.StatusOK, opp)
}
