package command_test

import (
    "context"
    "errors"
    "strings"
    "sync"
    "testing"

    "github.com/govalues/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/mock"
    "github.com/stretchr/testify/require"

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/service/command"
    "github.com/tinoosan/records/internal/storage/memory"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
    d := decimal.MustParse(s)
    return &d
}

// spyCache records evictions.
type spyCache struct {
    mu      sync.Mutex
    deleted []string
}

func (c *spyCache) Get(context.Context, string) (*record.Record, bool) { return nil, false }
func (c *spyCache) Set(context.Context, string, *record.Record)        {}
func (c *spyCache) Delete(_ context.Context, key string) {
    c.mu.Lock()
    c.deleted = append(c.deleted, key)
    c.mu.Unlock()
}

type mockWriter struct{ mock.Mock }

func (m *mockWriter) Save(ctx context.Context, r record.Record) (record.Record, error) {
    args := m.Called(ctx, r)
    return args.Get(0).(record.Record), args.Error(1)
}

func (m *mockWriter) FindByID(ctx context.Context, id string) (record.Record, bool, error) {
    args := m.Called(ctx, id)
    return args.Get(0).(record.Record), args.Bool(1), args.Error(2)
}

func (m *mockWriter) DeleteByID(ctx context.Context, id string) (bool, error) {
    args := m.Called(ctx, id)
    return args.Bool(0), args.Error(1)
}

func newTestService(t *testing.T) (command.Service, *memory.Store, *spyCache) {
    t.Helper()
    store := memory.New()
    views := &spyCache{}
    return command.New(store, views), store, views
}

// -- CreateTransaction --

func TestCreateTransaction_Persists(t *testing.T) {
    svc, store, _ := newTestService(t)
    ctx := context.Background()

    created, err := svc.CreateTransaction(ctx, command.CreateRequest{Name: strPtr("Purchase goods"), Amount: decPtr("100.50")})
    require.NoError(t, err)
    assert.NotEmpty(t, created.ID)
    assert.Equal(t, "Purchase goods", created.Name)
    assert.Equal(t, "100.50", created.Amount.String())
    assert.True(t, created.CreateTime.Equal(created.UpdateTime))

    found, ok, err := store.FindByID(ctx, created.ID)
    require.NoError(t, err)
    require.True(t, ok)
    assert.Equal(t, created.Name, found.Name)
    assert.Zero(t, created.Amount.Cmp(found.Amount))
}

func TestCreateTransaction_InvalidNeverTouchesStore(t *testing.T) {
    svc, store, _ := newTestService(t)
    cases := []command.CreateRequest{
        {Amount: decPtr("1")},
        {Name: strPtr("  "), Amount: decPtr("1")},
        {Name: strPtr(strings.Repeat("x", 101)), Amount: decPtr("1")},
        {Name: strPtr("n")},
        {Name: strPtr("n"), Amount: decPtr("-1")},
        {Name: strPtr("n"), Amount: decPtr("0.001")},
    }
    for _, req := range cases {
        _, err := svc.CreateTransaction(context.Background(), req)
        assert.ErrorIs(t, err, errs.ErrInvalid)
    }
    assert.Equal(t, 0, store.Len())
}

func TestCreateTransaction_StorageError(t *testing.T) {
    w := &mockWriter{}
    w.On("Save", mock.Anything, mock.Anything).Return(record.Record{}, errors.New("connection refused"))
    svc := command.New(w, nil)

    _, err := svc.CreateTransaction(context.Background(), command.CreateRequest{Name: strPtr("n"), Amount: decPtr("1")})
    assert.ErrorIs(t, err, errs.ErrInternal)
    assert.Equal(t, "internal error", err.Error())
    w.AssertExpectations(t)
}

// -- UpdateTransaction --

func TestUpdateTransaction_AmountOnly(t *testing.T) {
    svc, _, views := newTestService(t)
    ctx := context.Background()
    created, err := svc.CreateTransaction(ctx, command.CreateRequest{Name: strPtr("Purchase goods"), Amount: decPtr("100.50")})
    require.NoError(t, err)

    updated, err := svc.UpdateTransaction(ctx, created.ID, command.UpdateRequest{Amount: decPtr("200.00")})
    require.NoError(t, err)
    assert.Equal(t, created.ID, updated.ID)
    assert.Equal(t, "Purchase goods", updated.Name)
    assert.Equal(t, "200.00", updated.Amount.String())
    assert.True(t, updated.UpdateTime.After(created.UpdateTime))
    assert.True(t, updated.CreateTime.Equal(created.CreateTime))
    assert.Equal(t, []string{created.ID}, views.deleted)
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
    svc, store, views := newTestService(t)

    _, err := svc.UpdateTransaction(context.Background(), "missing", command.UpdateRequest{Name: strPtr("x")})
    require.ErrorIs(t, err, errs.ErrNotFound)
    assert.Equal(t, "Transaction not found with id: missing", err.Error())
    assert.Equal(t, 0, store.Len())
    assert.Empty(t, views.deleted)
}

func TestUpdateTransaction_BlankID(t *testing.T) {
    svc, _, _ := newTestService(t)
    for _, id := range []string{"", "   "} {
        _, err := svc.UpdateTransaction(context.Background(), id, command.UpdateRequest{})
        require.ErrorIs(t, err, errs.ErrInvalid)
        assert.Equal(t, "Transaction ID cannot be null or empty", err.Error())
    }
}

func TestUpdateTransaction_InvalidFieldKeepsStoredRecord(t *testing.T) {
    svc, store, _ := newTestService(t)
    ctx := context.Background()
    created, err := svc.CreateTransaction(ctx, command.CreateRequest{Name: strPtr("Rent"), Amount: decPtr("10")})
    require.NoError(t, err)

    _, err = svc.UpdateTransaction(ctx, created.ID, command.UpdateRequest{Name: strPtr("Changed"), Amount: decPtr("1.234")})
    require.ErrorIs(t, err, errs.ErrInvalid)

    stored, ok, err := store.FindByID(ctx, created.ID)
    require.NoError(t, err)
    require.True(t, ok)
    assert.Equal(t, "Rent", stored.Name)
}

// -- DeleteTransaction --

func TestDeleteTransaction_Idempotent(t *testing.T) {
    svc, store, views := newTestService(t)
    ctx := context.Background()
    created, err := svc.CreateTransaction(ctx, command.CreateRequest{Name: strPtr("n"), Amount: decPtr("1")})
    require.NoError(t, err)

    require.NoError(t, svc.DeleteTransaction(ctx, created.ID))
    exists, err := store.ExistsByID(ctx, created.ID)
    require.NoError(t, err)
    assert.False(t, exists)

    require.NoError(t, svc.DeleteTransaction(ctx, created.ID))
    require.NoError(t, svc.DeleteTransaction(ctx, "never-existed"))
    assert.Equal(t, []string{created.ID, created.ID, "never-existed"}, views.deleted)
}

func TestDeleteTransaction_BlankID(t *testing.T) {
    svc, _, _ := newTestService(t)
    err := svc.DeleteTransaction(context.Background(), " ")
    assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestDeleteTransaction_StorageError(t *testing.T) {
    w := &mockWriter{}
    w.On("DeleteByID", mock.Anything, "abc").Return(false, errors.New("boom"))
    svc := command.New(w, nil)

    err := svc.DeleteTransaction(context.Background(), "abc")
    assert.ErrorIs(t, err, errs.ErrInternal)
    w.AssertExpectations(t)
}
