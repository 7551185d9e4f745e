package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
    // ErrInvalid marks caller input that failed a validation rule (HTTP 400).
    ErrInvalid  = errors.New("invalid_argument")
    ErrNotFound = errors.New("not_found")
    // ErrInternal is the catch-all for anything unexpected (HTTP 500).
    ErrInternal = errors.New("internal")
)

// Error pairs a sentinel kind with a human-readable message.
// errors.Is(err, ErrInvalid) etc. classifies it through Unwrap.
type Error struct {
    Kind  error
    Msg   string
    Cause error
}

func (e *Error) Error() string {
    if e.Msg != "" { return e.Msg }
    return e.Kind.Error()
}

// Unwrap exposes both the kind and, when present, the underlying cause.
func (e *Error) Unwrap() []error {
    if e.Cause == nil { return []error{e.Kind} }
    return []error{e.Kind, e.Cause}
}

func Invalid(msg string) error  { return &Error{Kind: ErrInvalid, Msg: msg} }
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Internal wraps an unexpected failure. The message stays generic so callers
// can surface it without leaking detail; the cause is reachable via errors.Is/As.
func Internal(cause error) error {
    if cause == nil { return nil }
    var e *Error
    if errors.As(cause, &e) { return cause }
    return &Error{Kind: ErrInternal, Msg: "internal error", Cause: cause}
}

// KindOf returns the sentinel an error belongs to. Anything unclassified is internal.
func KindOf(err error) error {
    switch {
    case err == nil:
        return nil
    case errors.Is(err, ErrInvalid):
        return ErrInvalid
    case errors.Is(err, ErrNotFound):
        return ErrNotFound
    default:
        return ErrInternal
    }
}
