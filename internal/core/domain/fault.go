package domain

import "fmt"

// Kind enumerates every failure category the API can surface. The error
// handler switches exhaustively over these, so adding a kind is a
// single-point change there.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindEmptyResult
)

// FieldError is one violation inside an aggregate validation fault.
// Order is preserved from collection to response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Fault is the closed failure type raised by services and repositories.
// No layer below the HTTP error handler builds HTTP-shaped responses.
type Fault struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (f *Fault) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.cause)
	}
	return f.Message
}

func (f *Fault) Unwrap() error { return f.cause }

// CredentialsMessage is the single message used for every authentication
// failure on the login path. Unknown email and wrong password must be
// indistinguishable to the caller.
const CredentialsMessage = "invalid credentials, try to log in again"

func NewValidation(fields ...FieldError) *Fault {
	return &Fault{Kind: KindValidation, Message: "request validation failed", Fields: fields}
}

func NewUnauthenticated(message string) *Fault {
	return &Fault{Kind: KindUnauthenticated, Message: message}
}

func NewForbidden(message string) *Fault {
	return &Fault{Kind: KindForbidden, Message: message}
}

func NewNotFound(format string, args ...any) *Fault {
	return &Fault{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) *Fault {
	return &Fault{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewEmptyResult(message string) *Fault {
	return &Fault{Kind: KindEmptyResult, Message: message}
}

// NewUnexpected wraps an uncategorized error. The original cause is kept
// for logging but never reaches the response body.
func NewUnexpected(cause error) *Fault {
	return &Fault{Kind: KindUnexpected, Message: "internal server error", cause: cause}
}
