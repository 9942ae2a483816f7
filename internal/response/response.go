// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

// Envelope wraps every response body, errors included.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

func OK(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, data, message)
}

func Created(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusCreated, data, message)
}

// Error maps err onto its status and public message. Failures that are
// not domain errors are logged since their detail never reaches the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	ErrorWithData(w, log, err, nil)
}

func ErrorWithData(w http.ResponseWriter, log *zap.Logger, err error, data any) {
	status := domain.StatusCode(err)
	if status >= http.StatusInternalServerError && log != nil {
		cause := err
		var de *domain.Error
		if errors.As(err, &de) && de.Cause != nil {
			cause = de.Cause
		}
		log.Error("request failed", zap.Int("status", status), zap.Error(cause))
	}
	if data == nil {
		data = struct{}{}
	}
	JSON(w, status, data, domain.PublicMessage(err))
}
