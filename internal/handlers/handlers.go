package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"agrocore/db"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

// Pusher is the live-delivery side of the real-time channel. Pushes are
// best-effort: the return value reports presence, callers never fail on it.
type Pusher interface {
	Push(userID int, event string, data any) bool
}

// Handler wires Storage and the push channel behind the HTTP surface.
type Handler struct {
	Store     StorageInterface
	Live      Pusher
	UploadDir string

	validate *validator.Validate
}

func NewHandler(store StorageInterface, live Pusher, uploadDir string) *Handler {
	return &Handler{
		Store:     store,
		Live:      live,
		UploadDir: uploadDir,
		validate:  validator.New(),
	}
}

// PingHandler answers "ok" for liveness probes.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends the {"message": ...} body the client surfaces verbatim.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeStorageError maps persistence failures onto the error taxonomy:
// missing rows → 404, unique/check violations → 409, guarded transitions that
// matched nothing → 400, everything else → logged 500 with a generic message.
func writeStorageError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, db.ErrInvalidState):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == "23505" || pqErr.Code == "23514") {
			writeError(w, http.StatusConflict, "record already exists")
			return
		}
		slog.Error("storage failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody unmarshals a bounded JSON body into v and runs tag validation.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// queryUserID reads a required positive integer user id from a query param.
func queryUserID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get(param))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "missing or invalid "+param)
		return 0, false
	}
	return id, true
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams reads limit and offset with defaults and caps.
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: 20, Offset: 0}

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		params.Limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		params.Offset = o
	}
	return params
}
