package notegen

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pycert-prep/backend/internal/bank"
	"github.com/pycert-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) DraftNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question id"})
		return
	}

	note, err := h.service.DraftNote(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrDisabled):
			writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Note drafting is not configured"})
		case errors.Is(err, ErrNoteExists):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Question already has a note"})
		case errors.Is(err, bank.ErrNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		default:
			log.Printf("[notegen] DraftNote error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to draft note"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"note": note})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
