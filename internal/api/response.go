package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *responseError `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Data: data}); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{Error: &responseError{Code: status, Message: message}})
}
