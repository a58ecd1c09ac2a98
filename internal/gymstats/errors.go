package gymstats

import (
	"errors"
	"net/http"

	"github.com/2beens/gymstreak/internal/streak"
	"github.com/2beens/gymstreak/pkg"

	log "github.com/sirupsen/logrus"
)

// StatusCode maps engine and collaborator errors to the HTTP status reported to clients.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case streak.IsValidationError(err):
		return http.StatusBadRequest
	case streak.IsConfigurationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, streak.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError logs err and writes it as a JSON error body with the mapped status code.
// Internal errors are not echoed back, the client gets fallbackMsg instead.
func WriteError(w http.ResponseWriter, err error, fallbackMsg string) {
	statusCode := StatusCode(err)
	msg := fallbackMsg
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		log.Debugf("%s: %s", fallbackMsg, err)
		msg = err.Error()
	default:
		log.Errorf("%s: %s", fallbackMsg, err)
	}
	pkg.WriteJSONError(w, msg, statusCode)
}
