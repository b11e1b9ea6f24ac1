// Package respond writes JSON bodies and error responses.
package respond

import (
	"encoding/json"
	"net/http"

	"athletics-backend/apperr"
)

type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// заголовки уже отправлены, остаётся только залогировать
		Fallback().WithError(err).Error("failed to encode response")
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps err to its HTTP status and writes {"detail", "code"}.
// Internal errors are logged with the request entry and never echoed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.Status(kind)

	entry := Logger(r.Context()).WithField("http.resp.status", status)
	if kind == apperr.KindInternal {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
	}

	JSON(w, status, ErrorBody{Detail: apperr.DetailOf(err), Code: kind.String()})
}
