package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"smartpro/internal/requestctx"
)

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func write(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	env.RequestID = requestctx.GetRequestID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Success(w http.ResponseWriter, r *http.Request, data any) {
	write(w, r, http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, r *http.Request, data any) {
	write(w, r, http.StatusCreated, Envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}})
}

func FailWithDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	write(w, r, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}})
}
