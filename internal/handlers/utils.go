package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type contextKey string

const contextUserIDKey contextKey = "userID"

var errNoSubject = errors.New("no authenticated user in context")

// userIDFromContext returns the authenticated user id placed in the
// request context by the auth middleware.
func userIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(contextUserIDKey).(int)
	if !ok || userID < 1 {
		return 0, errNoSubject
	}
	return userID, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// MessageResponse is the `{message}` payload used for errors and for
// successful mutations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}
