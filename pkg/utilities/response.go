package utilities

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// WriteJSON writes v as a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps the error taxonomy onto HTTP statuses and writes a
// uniform error body. Internal faults never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindBusinessRule:
		status = http.StatusConflict
	}
	msg := "internal failure"
	var ae *apperror.Error
	if errors.As(err, &ae) && ae.Kind != apperror.KindInternal {
		msg = ae.Message
	}
	WriteJSON(w, status, map[string]string{"error": msg})
}
