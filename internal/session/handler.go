package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pycert-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Start(userID)
	if err != nil {
		if errors.Is(err, ErrNoQuestions) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No eligible questions available — import a question bank first"})
			return
		}
		log.Printf("[mock] Start error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start mock exam"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Current(userID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No mock exam in progress — start a new one"})
			return
		}
		log.Printf("[mock] Current error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load current question"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.Submit(userID, req.ChoiceID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No mock exam in progress — start a new one"})
		case errors.Is(err, ErrExamOver):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "The exam is over — view your results"})
		default:
			log.Printf("[mock] Submit error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record answer"})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Advance(userID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No mock exam in progress — start a new one"})
			return
		}
		log.Printf("[mock] Advance error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to advance"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Report(userID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No mock exam to report — start a new one"})
			return
		}
		log.Printf("[mock] Result error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build result"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
