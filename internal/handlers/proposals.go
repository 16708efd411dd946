package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"agrocore/db"
	"agrocore/models"

	"github.com/go-chi/chi/v5"
)

// proposalTransitions is the proposal lifecycle: pending can be resolved or
// countered by the buyer; a countered proposal goes back to pending when the
// seller accepts the changes, or dies rejected. accepted and rejected are
// terminal.
var proposalTransitions = map[models.ProposalStatus][]models.ProposalStatus{
	models.ProposalPending:   {models.ProposalAccepted, models.ProposalRejected, models.ProposalCountered},
	models.ProposalCountered: {models.ProposalPending, models.ProposalRejected},
}

func transitionAllowed(from, to models.ProposalStatus) bool {
	for _, t := range proposalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CreateProposalHandler handles POST /api/proposals: a seller submits a quote
// against an active opportunity they do not own.
func (h *Handler) CreateProposalHandler(w http.ResponseWriter, r *http.Request) {
	var p models.Proposal
	if !h.decodeBody(w, r, &p) {
		return
	}

	opp, err := h.Store.GetOpportunity(r.Context(), p.OpportunityID)
	if err != nil {
		writeStorageError(w, err, "opportunity not found")
		return
	}
	if opp.Status != models.OpportunityActive {
		writeError(w, http.StatusBadRequest, "opportunity is not active")
		return
	}
	if p.SellerID == opp.UserID {
		writeError(w, http.StatusForbidden, "opportunity owner cannot submit a proposal to it")
		return
	}

	if err := h.Store.CreateProposal(r.Context(), &p); err != nil {
		writeStorageError(w, err, "proposal not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"proposalId": p.ID})
}

// UpdateProposalStatusHandler handles PUT /api/proposals/{proposalId}/status.
// Accepting creates the contract atomically; "pending" from a countered
// proposal is the seller accepting the buyer's revised terms.
func (h *Handler) UpdateProposalStatusHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, err := strconv.Atoi(chi.URLParam(r, "proposalId"))
	if err != nil || proposalID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid proposalId")
		return
	}

	var input struct {
		UserID int                   `json:"userId" validate:"required"`
		Status models.ProposalStatus `json:"status" validate:"required,oneof=accepted rejected pending"`
	}
	if !h.decodeBody(w, r, &input) {
		return
	}

	proposal, err := h.Store.GetProposal(r.Context(), proposalID)
	if err != nil {
		writeStorageError(w, err, "proposal not found")
		return
	}
	if !transitionAllowed(proposal.Status, input.Status) {
		writeError(w, http.StatusBadRequest, "invalid status transition")
		return
	}

	opp, err := h.Store.GetOpportunity(r.Context(), proposal.OpportunityID)
	if err != nil {
		writeStorageError(w, err, "opportunity not found")
		return
	}

	// Who may drive the transition depends on where the proposal sits:
	// a pending proposal is in the buyer's court, a countered one in the
	// seller's.
	switch proposal.Status {
	case models.ProposalPending:
		if input.UserID != opp.UserID {
			writeError(w, http.StatusForbidden, "only the opportunity owner can decide a pending proposal")
			return
		}
	case models.ProposalCountered:
		if input.UserID != proposal.SellerID {
			writeError(w, http.StatusForbidden, "only the seller can answer a counter-offer")
			return
		}
	}

	if input.Status == models.ProposalAccepted {
		contract, err := h.Store.AcceptProposal(r.Context(), proposalID)
		if err != nil {
			if errors.Is(err, db.ErrInvalidState) {
				writeError(w, http.StatusConflict, "proposal is already resolved")
				return
			}
			writeStorageError(w, err, "proposal not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "proposal accepted",
			"contract": contract,
		})
		return
	}

	if err := h.Store.UpdateProposalStatus(r.Context(), proposalID, proposal.Status, input.Status); err != nil {
		if errors.Is(err, db.ErrInvalidState) {
			writeError(w, http.StatusConflict, "proposal is already resolved")
			return
		}
		writeStorageError(w, err, "proposal not found")
		return
	}

	proposal.Status = input.Status
	writeJSON(w, http.StatusOK, proposal)
}

// CounterProposalHandler handles PUT /api/proposals/{proposalId}/counter: the
// buyer revises the terms of a pending proposal. The revision overwrites the
// proposal in place; only the latest round is retained.
func (h *Handler) CounterProposalHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, err := strconv.Atoi(chi.URLParam(r, "proposalId"))
	if err != nil || proposalID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid proposalId")
		return
	}

	var input struct {
		UserID   int     `json:"userId" validate:"required"`
		Price    float64 `json:"price" validate:"required,gt=0"`
		Quantity string  `json:"quantity" validate:"required,max=100"`
		Message  string  `json:"message"`
	}
	if !h.decodeBody(w, r, &input) {
		return
	}

	proposal, err := h.Store.GetProposal(r.Context(), proposalID)
	if err != nil {
		writeStorageError(w, err, "proposal not found")
		return
	}
	if proposal.Status != models.ProposalPending {
		writeError(w, http.StatusBadRequest, "only a pending proposal can be countered")
		return
	}

	opp, err := h.Store.GetOpportunity(r.Context(), proposal.OpportunityID)
	if err != nil {
		writeStorageError(w, err, "opportunity not found")
		return
	}
	if input.UserID != opp.UserID {
		writeError(w, http.StatusForbidden, "only the opportunity owner can counter a proposal")
		return
	}

	if err := h.Store.CounterProposal(r.Context(), proposalID, input.Price, input.Quantity, input.Message); err != nil {
		if errors.Is(err, db.ErrInvalidState) {
			writeError(w, http.StatusConflict, "proposal is already resolved")
			return
		}
		writeStorageError(w, err, "proposal not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "counter-offer sent"})
}

// GetUserProposalsHandler handles GET /api/proposals?userId=: every proposal
// the user is party to, with the sent/received direction precomputed.
func (h *Handler) GetUserProposalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	proposals, err := h.Store.GetUserProposals(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err, "proposals not found")
		return
	}

	writeJSON(w, http.StatusOK, proposals)
}
