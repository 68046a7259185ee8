package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with the given status. An
// encoding failure after the header is out cannot be reported to the
// client, so it is dropped.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent answers 204 with an empty body
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
