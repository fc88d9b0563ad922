package httpx

import (
	"encoding/json"
	"net/http"
)

// fieldError mirrors the error element shape clients already consume:
// {type, value, msg, path, location}.
type fieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path,omitempty"`
	Location string `json:"location,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func writeFieldErrors(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func writeNotFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"errors": []fieldError{{Type: "not_found", Value: nil, Msg: msg}},
	})
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// writeServerError hides the cause from the client; the real error is
// already logged at the point of failure.
func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"message": "Internal server error",
		"errors": []fieldError{{
			Type:     "server",
			Value:    nil,
			Msg:      "unexpected error",
			Path:     "server",
			Location: "internal",
		}},
	})
}
