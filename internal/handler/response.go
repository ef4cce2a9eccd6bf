package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"fsanano/go-orders/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as an *errs.HTTPError. Anything else becomes a 500
// whose cause is logged and never sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = errs.NewInternalServerError().WithCause(err)
	}

	log := zerolog.Ctx(r.Context())
	if httpErr.Status >= http.StatusInternalServerError {
		log.Error().Err(errors.Unwrap(httpErr)).Str("code", httpErr.Code).Msg("request failed")
	} else {
		log.Debug().Err(httpErr).Str("code", httpErr.Code).Msg("request rejected")
	}

	writeJSON(w, httpErr.Status, httpErr)
}
