package handlers

import (
	"net/http"
	"strconv"

	"agrocore/models"

	"github.com/go-chi/chi/v5"
)

// GetUserContractsHandler handles GET /api/contracts?userId=.
func (h *Handler) GetUserContractsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	contracts, err := h.Store.GetUserContracts(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err, "contracts not found")
		return
	}

	writeJSON(w, http.StatusOK, contracts)
}

// UpdateContractStatusHandler handles PUT /api/contracts/{contractId}/status.
// Either party may advance the contract.
func (h *Handler) UpdateContractStatusHandler(w http.ResponseWriter, r *http.Request) {
	contractID, err := strconv.Atoi(chi.URLParam(r, "contractId"))
	if err != nil || contractID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid contractId")
		return
	}

	var input struct {
		UserID int                   `json:"userId" validate:"required"`
		Status models.ContractStatus `json:"status" validate:"required,oneof=active completed cancelled"`
	}
	if !h.decodeBody(w, r, &input) {
		return
	}

	contract, err := h.Store.GetContract(r.Context(), contractID)
	if err != nil {
		writeStorageError(w, err, "contract not found")
		return
	}
	if input.UserID != contract.BuyerID && input.UserID != contract.SellerID {
		writeError(w, http.StatusForbidden, "only a contract party can change its status")
		return
	}

	if err := h.Store.UpdateContractStatus(r.Context(), contractID, input.Status); err != nil {
		writeStorageError(w, err, "contract not found")
		return
	}

	contract.Status = input.Status
	writeJSON(w, http.StatusOK, contract)
}

// MarketStatsHandler handles GET /api/market/stats?userId=.
func (h *Handler) MarketStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	stats, err := h.Store.GetMarketStats(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err, "stats not found")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
