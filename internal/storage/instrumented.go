package storage

import (
    "context"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"

    "github.com/tinoosan/records/internal/record"
)

var storeOpsTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
        Namespace: "records",
        Name:      "store_operations_total",
        Help:      "Total number of record store operations by result",
    },
    []string{"op", "result"},
)

// Instrumented wraps a Store and counts every call in Prometheus.
func Instrumented(s Store) Store { return &instrumented{next: s} }

type instrumented struct {
    next Store
}

func observe(op string, err error) {
    result := "ok"
    if err != nil {
        result = "error"
    }
    storeOpsTotal.WithLabelValues(op, result).Inc()
}

func (i *instrumented) Save(ctx context.Context, r record.Record) (record.Record, error) {
    out, err := i.next.Save(ctx, r)
    observe("save", err)
    return out, err
}

func (i *instrumented) FindByID(ctx context.Context, id string) (record.Record, bool, error) {
    out, ok, err := i.next.FindByID(ctx, id)
    observe("find_by_id", err)
    return out, ok, err
}

func (i *instrumented) FindPage(ctx context.Context, page, size int) (Page[record.Record], error) {
    out, err := i.next.FindPage(ctx, page, size)
    observe("find_page", err)
    return out, err
}

func (i *instrumented) DeleteByID(ctx context.Context, id string) (bool, error) {
    ok, err := i.next.DeleteByID(ctx, id)
    observe("delete_by_id", err)
    return ok, err
}

func (i *instrumented) ExistsByID(ctx context.Context, id string) (bool, error) {
    ok, err := i.next.ExistsByID(ctx, id)
    observe("exists_by_id", err)
    return ok, err
}

// Ready forwards to the wrapped store when it supports readiness checks.
func (i *instrumented) Ready(ctx context.Context) error {
    if rc, ok := i.next.(ReadyChecker); ok {
        return rc.Ready(ctx)
    }
    return nil
}
