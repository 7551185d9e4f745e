package httpapi

import (
    "net/http"
    "strconv"
    "time"

    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    httpRequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "records",
            Name:      "http_requests_total",
            Help:      "Total number of HTTP requests",
        },
        []string{"method", "route", "status"},
    )
    httpRequestDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "records",
            Name:      "http_request_duration_seconds",
            Help:      "Duration of HTTP requests in seconds",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"method", "route", "status"},
    )
)

func metricsHandler() http.Handler {
    return promhttp.Handler()
}

// metricsMiddleware labels by route pattern, not raw path, to keep ids out of
// label values. Unmatched requests are labelled "unmatched".
func metricsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
        start := time.Now()
        next.ServeHTTP(ww, r)
        route := routePattern(r)
        status := strconv.Itoa(ww.Status())
        httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
        httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
    })
}
