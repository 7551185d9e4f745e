package httpapi

import (
    "log/slog"
    "net/http"
    "runtime/debug"
    "time"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
)

// routePattern is the matched chi pattern, or "unmatched" when routing found
// nothing. It is only complete once the handler chain has returned.
func routePattern(r *http.Request) string {
    if rc := chi.RouteContext(r.Context()); rc != nil {
        if p := rc.RoutePattern(); p != "" { return p }
    }
    return "unmatched"
}

// accessLog writes one line per request once it completes. Server errors log
// at ERROR and client errors at WARN. The transaction id is included for
// routes that address a single record.
func accessLog(l *slog.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            next.ServeHTTP(ww, r)

            status := ww.Status()
            level := slog.LevelInfo
            switch {
            case status >= http.StatusInternalServerError:
                level = slog.LevelError
            case status >= http.StatusBadRequest:
                level = slog.LevelWarn
            }
            attrs := []slog.Attr{
                slog.String("req_id", chimw.GetReqID(r.Context())),
                slog.String("method", r.Method),
                slog.String("route", routePattern(r)),
                slog.Int("status", status),
                slog.Int("bytes", ww.BytesWritten()),
                slog.Duration("duration", time.Since(start)),
            }
            if id := chi.URLParam(r, "id"); id != "" {
                attrs = append(attrs, slog.String("transaction_id", id))
            }
            l.LogAttrs(r.Context(), level, "http request", attrs...)
        })
    }
}

// recoverPanics turns a handler panic into the generic JSON 500.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func recoverPanics(l *slog.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            defer func() {
                rec := recover()
                if rec == nil { return }
                if rec == http.ErrAbortHandler { panic(rec) }
                l.Error("handler panic",
                    "req_id", chimw.GetReqID(r.Context()),
                    "method", r.Method,
                    "path", r.URL.Path,
                    "panic", rec,
                    "stack", string(debug.Stack()),
                )
                writeErr(w, http.StatusInternalServerError, msgInternal, codeInternal)
            }()
            next.ServeHTTP(w, r)
        })
    }
}
