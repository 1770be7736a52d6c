package handlers

import (
	"encoding/json"
	"net/http"
)

// ApiResponse is the envelope every JSON endpoint answers with.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, ApiResponse{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: message})
}

// decodeJSON reads the request body into v, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}
