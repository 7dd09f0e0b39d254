package web

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hpungsan/tally/internal/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Status  string         `json:"status"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes err as a structured error response. Anything that is not
// a TallyError is reported as INTERNAL; internal details are logged, not sent.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	tErr, ok := errors.As(err)
	if !ok {
		tErr = errors.NewInternal(err)
	}

	log := zerolog.Ctx(r.Context())
	body := errorBody{
		Status:  "error",
		Code:    string(tErr.Code),
		Message: tErr.Message,
	}
	if tErr.Code == errors.ErrInternal {
		log.Error().Str("code", string(tErr.Code)).Interface("details", tErr.Details).Msg("internal error")
	} else {
		log.Debug().Str("code", string(tErr.Code)).Msg(tErr.Message)
		body.Details = tErr.Details
	}

	renderJSON(w, tErr.Status, body)
}
