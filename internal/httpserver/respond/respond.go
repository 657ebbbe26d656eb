package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Respond writes a JSON response with the given status code. The body is
// marshaled before any byte goes out, so an unencodable value yields a clean
// 500 instead of a truncated 2xx body.
func Respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("encoding response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}` + "\n"))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// ErrorResponse is the JSON error envelope shared by every endpoint: a stable
// machine-readable code plus an optional human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondError writes a JSON error response.
func RespondError(w http.ResponseWriter, status int, err string, message string) {
	Respond(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}
