package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
)

// internalErrorMessage is the only detail ever sent to clients for 5xx
// responses. The legacy panel's frontend matches on this exact string.
const internalErrorMessage = "Database error"

// DecodeJSON decodes JSON from the request body into the destination and
// handles errors. Returns true if successful, false if there was an error
// (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteFailure(w, http.StatusOK, "invalid request body")
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// WriteSuccess writes the {"success":true, ...} envelope every endpoint uses.
func WriteSuccess(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	WriteJSON(w, http.StatusOK, body)
}

// WriteFailure writes the {"success":false,"error":...} envelope.
func WriteFailure(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]any{"success": false, "error": message})
}

// WriteAppError maps an application error onto the wire contract. Expected
// outcomes (bad input, rejected credentials) stay HTTP 200 so the panel's
// frontend can read the envelope; only auth and server failures use 4xx/5xx.
func WriteAppError(w http.ResponseWriter, err error) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeRejected:
		WriteFailure(w, http.StatusOK, errorMessage(err))
	case apperrors.ErrCodeNotFound:
		WriteFailure(w, http.StatusNotFound, errorMessage(err))
	case apperrors.ErrCodeUnauthorized:
		WriteFailure(w, http.StatusUnauthorized, errorMessage(err))
	default:
		// Internal details never cross the wire.
		WriteFailure(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

// errorMessage pulls the client-facing message, dropping any wrapped cause.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
