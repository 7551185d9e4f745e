package httpapi

import (
    "errors"
    "log/slog"
    "net/http"

    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/records/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
}

const (
    codeInvalid  = "invalid_argument"
    codeNotFound = "not_found"
    codeInternal = "internal"
    msgInternal  = "internal server error"
)

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, codeInvalid) }

// writeServiceErr maps a service error to its HTTP status. Internal causes are
// logged and never echoed to the client.
func writeServiceErr(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
    switch errs.KindOf(err) {
    case errs.ErrInvalid:
        writeErr(w, http.StatusBadRequest, err.Error(), codeInvalid)
    case errs.ErrNotFound:
        writeErr(w, http.StatusNotFound, err.Error(), codeNotFound)
    default:
        l.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "err", unwrapCause(err))
        writeErr(w, http.StatusInternalServerError, msgInternal, codeInternal)
    }
}

func unwrapCause(err error) error {
    var e *errs.Error
    if errors.As(err, &e) && e.Cause != nil { return e.Cause }
    return err
}
