package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/rcliao/pm-philosophy/internal/validation"
)

// maxBodyBytes caps request bodies; an answer set is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Error codes returned in the error envelope.
const (
	codeBadRequest     = "bad_request"
	codeInvalidRequest = "invalid_request"
	codeInvalidAnswers = "invalid_answers"
	codeTooFewAnswers  = "too_few_answers"
	codeNotFound       = "not_found"
)

type apiError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":{"code":"internal_error","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

// respondValidation reports every failed field of a request body.
func respondValidation(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code:    codeInvalidRequest,
			Message: verr.Error(),
			Fields:  verr.Fields,
		}})
		return
	}
	respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "request body too large")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, http.StatusBadRequest, codeBadRequest, "malformed JSON body")
		return false
	}
	if err := validation.Struct(dst); err != nil {
		respondValidation(w, err)
		return false
	}
	return true
}
