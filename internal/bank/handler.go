package bank

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pycert-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Dashboard()
	if err != nil {
		log.Printf("[bank] Dashboard error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build dashboard"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Deficits(w http.ResponseWriter, r *http.Request) {
	deficits, err := h.service.Deficits()
	if err != nil {
		log.Printf("[bank] Deficits error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to check quotas"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deficits":    deficits,
		"has_deficit": len(deficits) > 0,
	})
}

func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.service.ListChapters()
	if err != nil {
		log.Printf("[bank] ListChapters error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list chapters"})
		return
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	chapterNum, _ := strconv.Atoi(r.URL.Query().Get("chapter"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	resp, err := h.service.ListQuestions(chapterNum, page, pageSize)
	if err != nil {
		log.Printf("[bank] ListQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question id"})
		return
	}

	q, choices, err := h.service.GetQuestion(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
			return
		}
		log.Printf("[bank] GetQuestion error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load question"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question": q,
		"choices":  choices,
	})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.Export()
	if err != nil {
		log.Printf("[bank] Export error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to export bundle"})
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var bundle models.Bundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid bundle payload"})
		return
	}
	wipe := strings.EqualFold(r.URL.Query().Get("wipe"), "true")

	result, err := h.service.Import(r.Context(), &bundle, wipe)
	if err != nil {
		// Validation failures name the offending record; surface them as-is.
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
