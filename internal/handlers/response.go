package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps service errors onto the HTTP taxonomy. Expected
// conditions carry their message to the client; anything unrecognized is
// logged and hidden behind a generic 500.
func respondError(w http.ResponseWriter, err error) {
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		payload := map[string]interface{}{"message": vErr.Message}
		if len(vErr.MissingFields) > 0 {
			payload["missingFields"] = vErr.MissingFields
		}
		respondJSON(w, http.StatusBadRequest, payload)
	case errors.Is(err, apperrors.ErrDuplicateEmail),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrSelfRequest),
		errors.Is(err, apperrors.ErrRequestExists),
		errors.Is(err, apperrors.ErrAlreadyFriends):
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrRequestNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		respondJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	default:
		logrus.WithError(err).Error("Request failed")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
}
