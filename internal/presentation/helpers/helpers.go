package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func HttpError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// FieldError reports a rejected request parameter.
func FieldError(w http.ResponseWriter, field, msg string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: msg, Field: field})
}
