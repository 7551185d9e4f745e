// Package command implements the mutating transaction use cases: create,
// partial update and idempotent delete.
package command

import (
    "context"
    "strings"

    "github.com/govalues/decimal"

    "github.com/tinoosan/records/internal/cache"
    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
)

// Writer is the slice of the store the command side needs.
type Writer interface {
    Save(ctx context.Context, r record.Record) (record.Record, error)
    FindByID(ctx context.Context, id string) (record.Record, bool, error)
    DeleteByID(ctx context.Context, id string) (bool, error)
}

type Service interface {
    CreateTransaction(ctx context.Context, req CreateRequest) (record.Record, error)
    UpdateTransaction(ctx context.Context, id string, req UpdateRequest) (record.Record, error)
    DeleteTransaction(ctx context.Context, id string) error
}

// CreateRequest is the already shape-checked input for a new transaction.
// Content is re-validated by record.New.
type CreateRequest struct {
    Name     *string
    Amount   *decimal.Decimal
    Category *string
    Type     *record.Type
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
    Name     *string
    Amount   *decimal.Decimal
    Category *string
    Type     *record.Type
}

type service struct {
    writer Writer
    views  cache.Cache[record.Record]
}

// New wires the command service. A nil views cache disables eviction.
func New(writer Writer, views cache.Cache[record.Record]) Service {
    if views == nil { views = cache.Nop[record.Record]{} }
    return &service{writer: writer, views: views}
}

const msgIDEmpty = "Transaction ID cannot be null or empty"

func (s *service) CreateTransaction(ctx context.Context, req CreateRequest) (record.Record, error) {
    r, err := record.New(record.CreateInput{
        Name:     req.Name,
        Amount:   req.Amount,
        Category: req.Category,
        Type:     req.Type,
    })
    if err != nil { return record.Record{}, err }
    saved, err := s.writer.Save(ctx, r)
    if err != nil { return record.Record{}, errs.Internal(err) }
    return saved, nil
}

// UpdateTransaction applies the supplied fields to an existing record.
//
// Find, apply and save are separate store calls with no lock held across
// them. Two concurrent updates of the same id can therefore interleave and the
// last Save wins; the earlier update is lost.
func (s *service) UpdateTransaction(ctx context.Context, id string, req UpdateRequest) (record.Record, error) {
    if strings.TrimSpace(id) == "" { return record.Record{}, errs.Invalid(msgIDEmpty) }
    current, ok, err := s.writer.FindByID(ctx, id)
    if err != nil { return record.Record{}, errs.Internal(err) }
    if !ok { return record.Record{}, errs.NotFound("Transaction not found with id: " + id) }

    if err := current.Apply(record.UpdateInput{
        Name:     req.Name,
        Amount:   req.Amount,
        Category: req.Category,
        Type:     req.Type,
    }); err != nil {
        return record.Record{}, err
    }
    saved, err := s.writer.Save(ctx, current)
    if err != nil { return record.Record{}, errs.Internal(err) }
    s.views.Delete(ctx, id)
    return saved, nil
}

// DeleteTransaction removes id. Deleting an unknown id succeeds.
func (s *service) DeleteTransaction(ctx context.Context, id string) error {
    if strings.TrimSpace(id) == "" { return errs.Invalid(msgIDEmpty) }
    if _, err := s.writer.DeleteByID(ctx, id); err != nil { return errs.Internal(err) }
    s.views.Delete(ctx, id)
    return nil
}
