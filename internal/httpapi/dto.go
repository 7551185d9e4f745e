package httpapi

import (
    "bytes"
    "strconv"
    "time"

    "github.com/govalues/decimal"
    "github.com/govalues/money"

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/storage"
)

// amountField accepts an amount as a JSON number (100.50) or a numeric string
// ("100.50"). The decimal keeps the scale as written.
type amountField struct {
    decimal.Decimal
}

func (a *amountField) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if len(b) > 0 && b[0] == '"' {
        s, err := strconv.Unquote(string(b))
        if err != nil { return errs.Invalid(msgAmountFormat) }
        b = []byte(s)
    }
    d, err := decimal.Parse(string(b))
    if err != nil { return errs.Invalid(msgAmountFormat) }
    a.Decimal = d
    return nil
}

const msgAmountFormat = "Transaction amount must be a decimal number"

// Pointer fields distinguish "absent or null" from a supplied value.
type postTransactionRequest struct {
    Name     *string      `json:"name"`
    Amount   *amountField `json:"amount"`
    Category *string      `json:"category,omitempty"`
    Type     *string      `json:"type,omitempty"`
}

type updateTransactionRequest struct {
    Name     *string      `json:"name,omitempty"`
    Amount   *amountField `json:"amount,omitempty"`
    Category *string      `json:"category,omitempty"`
    Type     *string      `json:"type,omitempty"`
}

type transactionResponse struct {
    ID          string    `json:"id"`
    Name        string    `json:"name"`
    Amount      string    `json:"amount"`
    AmountMinor *int64    `json:"amount_minor,omitempty"`
    Currency    string    `json:"currency"`
    Category    string    `json:"category,omitempty"`
    Type        string    `json:"type,omitempty"`
    CreateTime  time.Time `json:"create_time"`
    UpdateTime  time.Time `json:"update_time"`
}

type pageResponse struct {
    Page  int                   `json:"page"`
    Size  int                   `json:"size"`
    Total int                   `json:"total"`
    Data  []transactionResponse `json:"data"`
}

// listTransactionsQuery holds parsed query params for GET /transactions.
type listTransactionsQuery struct {
    Page int
    Size int
}

func decPtr(a *amountField) *decimal.Decimal {
    if a == nil { return nil }
    d := a.Decimal
    return &d
}

func typePtr(s *string) *record.Type {
    if s == nil { return nil }
    t := record.Type(*s)
    return &t
}

func (s *Server) toTransactionResponse(r record.Record) transactionResponse {
    out := transactionResponse{
        ID:         r.ID,
        Name:       r.Name,
        Amount:     r.Amount.String(),
        Currency:   s.currency.Code(),
        Category:   r.Category,
        Type:       string(r.Type),
        CreateTime: r.CreateTime,
        UpdateTime: r.UpdateTime,
    }
    // amount_minor is omitted when the amount does not fit the currency's minor units
    if amt, err := money.NewAmountFromDecimal(s.currency, r.Amount); err == nil {
        if units, ok := amt.MinorUnits(); ok { out.AmountMinor = &units }
    }
    return out
}

func (s *Server) toPageResponse(q listTransactionsQuery, p storage.Page[record.Record]) pageResponse {
    out := pageResponse{Page: q.Page, Size: q.Size, Total: p.Total, Data: make([]transactionResponse, 0, len(p.Data))}
    for _, r := range p.Data {
        out.Data = append(out.Data, s.toTransactionResponse(r))
    }
    return out
}
