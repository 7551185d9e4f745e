package httpapi

import (
    "context"
    "errors"
    "io"
    "net/http"
    "strconv"

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/service/command"
)

type ctxKey string

const ctxKeyPostTransaction ctxKey = "validatedPostTransaction"
const ctxKeyUpdateTransaction ctxKey = "validatedUpdateTransaction"
const ctxKeyListTransactions ctxKey = "validatedListTransactions"

// Default paging when the query string omits page or size.
const (
    defaultPage = 1
    defaultSize = 10
)

// writeDecodeErr reports a body that could not be decoded. Amount parse
// failures keep their own message.
func writeDecodeErr(w http.ResponseWriter, err error) {
    var e *errs.Error
    if errors.As(err, &e) {
        badRequest(w, e.Msg)
        return
    }
    badRequest(w, "invalid JSON: "+err.Error())
}

// validatePostTransaction checks the shape of POST /transactions and stores the
// command request in the context. Content rules are enforced by the service.
func (s *Server) validatePostTransaction() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var req postTransactionRequest
            if err := decodeBody(r, &req); err != nil {
                writeDecodeErr(w, err)
                return
            }
            in := command.CreateRequest{
                Name:     req.Name,
                Amount:   decPtr(req.Amount),
                Category: req.Category,
                Type:     typePtr(req.Type),
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostTransaction, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateUpdateTransaction parses PUT/PATCH bodies. Every field is optional and
// an empty body is a no-op update.
func (s *Server) validateUpdateTransaction() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var req updateTransactionRequest
            if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
                writeDecodeErr(w, err)
                return
            }
            in := command.UpdateRequest{
                Name:     req.Name,
                Amount:   decPtr(req.Amount),
                Category: req.Category,
                Type:     typePtr(req.Type),
            }
            ctx := context.WithValue(r.Context(), ctxKeyUpdateTransaction, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateListTransactions parses page and size. Range checks belong to the
// query service so its messages reach the client unchanged.
func (s *Server) validateListTransactions() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            q := listTransactionsQuery{Page: defaultPage, Size: defaultSize}
            if raw := r.URL.Query().Get("page"); raw != "" {
                n, err := strconv.Atoi(raw)
                if err != nil { badRequest(w, "invalid page"); return }
                q.Page = n
            }
            if raw := r.URL.Query().Get("size"); raw != "" {
                n, err := strconv.Atoi(raw)
                if err != nil { badRequest(w, "invalid size"); return }
                q.Size = n
            }
            ctx := context.WithValue(r.Context(), ctxKeyListTransactions, q)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}
