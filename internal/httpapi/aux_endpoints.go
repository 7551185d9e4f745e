package httpapi

import (
    "context"
    "net/http"
    "time"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz calls every registered ReadyChecker with a short timeout.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
    deadline := 800 * time.Millisecond
    ctx, cancel := context.WithTimeout(r.Context(), deadline)
    defer cancel()
    for _, rc := range s.checks {
        if rc == nil { continue }
        if err := rc.Ready(ctx); err != nil {
            s.log.Warn("readiness check failed", "err", err)
            w.WriteHeader(http.StatusServiceUnavailable)
            return
        }
    }
    w.WriteHeader(http.StatusOK)
}
