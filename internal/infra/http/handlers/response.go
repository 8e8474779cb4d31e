package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// statusFor maps a use case error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		if de.Code == usecase.CodeNotFound {
			return http.StatusNotFound, de.Code
		}
		return http.StatusBadRequest, de.Code
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return http.StatusInternalServerError, te.Code
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeErrorResponse(w, status, code, err.Error())
}
