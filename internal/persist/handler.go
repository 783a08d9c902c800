package persist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/typeid"
)

type Handler struct {
	service *Service
	opts    engine.Options
}

func NewHandler(service *Service, opts engine.Options) *Handler {
	return &Handler{service: service, opts: opts}
}

func (h *Handler) boardID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["boardId"]
	if err := typeid.Validate(id, typeid.PrefixBoard); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid board id"})
		return "", false
	}
	return id, true
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.boardID(w, r)
	if !ok {
		return
	}
	b, err := h.service.Load(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Put stores a new snapshot. The body is normalised through a Store so
// saved boards always satisfy the z-order and frame reference rules.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := h.boardID(w, r)
	if !ok {
		return
	}

	var b document.Board
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	b.ID = id

	store := engine.NewStore(nil, h.opts)
	if err := store.Load(&b); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	version, err := h.service.Save(r.Context(), store.Snapshot())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"version": version})
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBoardNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrVersionConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "version conflict"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
