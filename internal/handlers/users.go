package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"agrocore/models"
)

// CreateUserHandler handles POST /api/users: registration. Credential handling
// lives outside this service; the caller supplies the already-produced password
// hash. Buyer-role users get their marketplace profile upserted alongside.
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         string             `json:"name" validate:"required,max=100"`
		Email        string             `json:"email" validate:"required,email"`
		PasswordHash string             `json:"passwordHash" validate:"required"`
		ProfileType  models.ProfileType `json:"profileType" validate:"required,oneof=producer supplier buyer"`
		Company      string             `json:"company"`
		Phone        string             `json:"phone"`
		Segment      string             `json:"segment"`
		Region       string             `json:"region"`
	}
	if !h.decodeBody(w, r, &input) {
		return
	}

	if _, err := h.Store.GetUserByEmail(r.Context(), input.Email); err == nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		writeStorageError(w, err, "user not found")
		return
	}

	u := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		ProfileType:  input.ProfileType,
		Company:      input.Company,
		Phone:        input.Phone,
	}
	// The unique index on users.email backstops the lookup above: a racing
	// duplicate surfaces as a 23505 and still maps to 409.
	if err := h.Store.CreateUser(r.Context(), u); err != nil {
		writeStorageError(w, err, "user not found")
		return
	}

	if u.ProfileType == models.ProfileBuyer {
		profile := &models.BuyerProfile{
			UserID:      u.ID,
			CompanyName: input.Company,
			Segment:     input.Segment,
			Region:      input.Region,
		}
		if err := h.Store.UpsertBuyerProfile(r.Context(), profile); err != nil {
			writeStorageError(w, err, "user not found")
			return
		}
	}

	writeJSON(w, http.StatusCreated, u)
}

// GetUsersHandler handles GET /api/users?userId=: the directory with the
// viewer's follow status resolved in one batched query.
func (h *Handler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	users, err := h.Store.ListUsers(r.Context(), viewerID)
	if err != nil {
		writeStorageError(w, err, "users not found")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetBuyersHandler handles GET /api/buyers: the buyer profile directory.
func (h *Handler) GetBuyersHandler(w http.ResponseWriter, r *http.Request) {
	buyers, err := h.Store.ListBuyerProfiles(r.Context())
	if err != nil {
		writeStorageError(w, err, "buyers not found")
		return
	}

	writeJSON(w, http.StatusOK, buyers)
}
