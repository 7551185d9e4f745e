// Package record holds the transaction record entity and the rules for
// constructing and updating it. Stores never validate content; this package does.
package record

import (
    "strings"
    "time"
    "unicode/utf8"

    "github.com/google/uuid"
    "github.com/govalues/decimal"

    "github.com/tinoosan/records/internal/errs"
)

// MaxNameLength is the longest accepted name, counted in characters.
const MaxNameLength = 100

// MaxAmountScale is the number of fractional digits an amount may carry.
const MaxAmountScale = 2

// Type classifies the direction of a transaction.
type Type string

const (
    // TypeDeposit records money coming in.
    TypeDeposit Type = "DEPOSIT"
    // TypeWithdraw records money going out.
    TypeWithdraw Type = "WITHDRAW"
)

// Types lists the accepted transaction types in display order.
func Types() []Type { return []Type{TypeDeposit, TypeWithdraw} }

// Record is a persisted transaction.
type Record struct {
    ID         string          `json:"id"`
    Name       string          `json:"name"`
    Amount     decimal.Decimal `json:"amount"`
    Category   string          `json:"category,omitempty"`
    Type       Type            `json:"type,omitempty"`
    CreateTime time.Time       `json:"create_time"`
    UpdateTime time.Time       `json:"update_time"`
}

// CreateInput carries the fields for a new record. Nil means "not supplied".
type CreateInput struct {
    Name     *string
    Amount   *decimal.Decimal
    Category *string
    Type     *Type
}

// UpdateInput carries a partial update. Only non-nil fields are applied.
type UpdateInput struct {
    Name     *string
    Amount   *decimal.Decimal
    Category *string
    Type     *Type
}

// now is replaced in tests that need deterministic timestamps.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// New validates in and builds a record with a fresh id and identical
// create/update timestamps.
func New(in CreateInput) (Record, error) {
    if in.Name == nil {
        return Record{}, errs.Invalid(msgNameEmpty)
    }
    if err := ValidateName(*in.Name); err != nil {
        return Record{}, err
    }
    if in.Amount == nil {
        return Record{}, errs.Invalid(msgAmountNull)
    }
    if err := ValidateAmount(*in.Amount); err != nil {
        return Record{}, err
    }
    var typ Type
    if in.Type != nil {
        t, err := ParseType(string(*in.Type))
        if err != nil { return Record{}, err }
        typ = t
    }
    var category string
    if in.Category != nil { category = strings.TrimSpace(*in.Category) }

    ts := now()
    return Record{
        ID:         uuid.NewString(),
        Name:       strings.TrimSpace(*in.Name),
        Amount:     *in.Amount,
        Category:   category,
        Type:       typ,
        CreateTime: ts,
        UpdateTime: ts,
    }, nil
}

// Apply validates every supplied field of in and, only if all pass, applies
// them and advances UpdateTime. On error r is left untouched.
func (r *Record) Apply(in UpdateInput) error {
    if in.Name != nil {
        if err := ValidateName(*in.Name); err != nil { return err }
    }
    if in.Amount != nil {
        if err := ValidateAmount(*in.Amount); err != nil { return err }
    }
    var typ Type
    if in.Type != nil {
        t, err := ParseType(string(*in.Type))
        if err != nil { return err }
        typ = t
    }

    if in.Name != nil { r.Name = strings.TrimSpace(*in.Name) }
    if in.Amount != nil { r.Amount = *in.Amount }
    if in.Category != nil { r.Category = strings.TrimSpace(*in.Category) }
    if in.Type != nil { r.Type = typ }

    // UpdateTime strictly increases, even when the clock has not ticked
    // past the stored precision or has stepped backwards.
    ts := now()
    if !ts.After(r.UpdateTime) {
        ts = r.UpdateTime.Add(time.Microsecond)
    }
    r.UpdateTime = ts
    return nil
}

const (
    msgNameEmpty     = "Transaction name cannot be null or empty"
    msgNameTooLong   = "Transaction name cannot exceed 100 characters"
    msgAmountNull    = "Transaction amount cannot be null"
    msgAmountNeg     = "Transaction amount cannot be negative"
    msgAmountScale   = "Transaction amount cannot have more than 2 decimal places"
    msgTypeUnknown   = "Transaction type must be one of DEPOSIT, WITHDRAW"
)

// ValidateName checks the raw (untrimmed) name.
func ValidateName(name string) error {
    if strings.TrimSpace(name) == "" {
        return errs.Invalid(msgNameEmpty)
    }
    if utf8.RuneCountInString(name) > MaxNameLength {
        return errs.Invalid(msgNameTooLong)
    }
    return nil
}

// ValidateAmount rejects negative amounts and amounts with more than two
// fractional digits. The scale is the one the value was parsed with, so
// "1.500" is rejected even though it equals 1.5.
func ValidateAmount(amount decimal.Decimal) error {
    if amount.IsNeg() {
        return errs.Invalid(msgAmountNeg)
    }
    if amount.Scale() > MaxAmountScale {
        return errs.Invalid(msgAmountScale)
    }
    return nil
}

// ParseType accepts the enumeration case-insensitively.
func ParseType(s string) (Type, error) {
    switch Type(strings.ToUpper(strings.TrimSpace(s))) {
    case TypeDeposit:
        return TypeDeposit, nil
    case TypeWithdraw:
        return TypeWithdraw, nil
    default:
        return "", errs.Invalid(msgTypeUnknown)
    }
}
