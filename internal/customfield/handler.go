package customfield

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type upsertRequest struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Required *bool  `json:"required"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utilities.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	required := req.Required != nil && *req.Required
	f, err := h.svc.Create(r.Context(), claims.UserID, req.Name, req.DataType, required)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, f)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	rows, err := h.svc.List(r.Context(), claims.UserID)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	f, err := h.svc.Get(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utilities.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	f, err := h.svc.Update(r.Context(), claims.UserID, r.PathValue("id"), req.Name, req.DataType, req.Required)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, r.PathValue("id")); err != nil {
		utilities.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
