// Package errors provides the error types returned by the catalog services and stores.
package errors

import "errors"

// Kind classifies a business error. The transport layer maps it to a status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPreconditionFailed
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindPreconditionFailed:
		return "PRECONDITION_FAILED"
	case KindBadRequest:
		return "BAD_REQUEST"
	default:
		return "UNKNOWN"
	}
}

// BusinessError is a rule violation with a message meant to be shown to the caller verbatim.
type BusinessError struct {
	Kind    Kind
	Message string
}

func New(kind Kind, message string) *BusinessError {
	return &BusinessError{Kind: kind, Message: message}
}

func (e *BusinessError) Error() string {
	return e.Message
}

// Is reports whether target is a BusinessError with the same kind and message.
func (e *BusinessError) Is(target error) bool {
	var t *BusinessError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// KindOf returns the kind of the first BusinessError in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// MessageOf returns the message of the first BusinessError in err's chain.
func MessageOf(err error) (string, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message, true
	}
	return "", false
}

var (
	ErrProductNotFound    = New(KindNotFound, "no product with that id")
	ErrStoreNotFound      = New(KindNotFound, "no store with that id")
	ErrStoreNotAssociated = New(KindPreconditionFailed, "store not associated with any product")
	ErrInvalidCategory    = New(KindBadRequest, "category must be one of: Perishable, Non-perishable")
	ErrInvalidCity        = New(KindBadRequest, "city must have exactly 3 characters")
)

var (
	ErrTransactionBegin    = errors.New("failed to begin transaction")
	ErrTransactionCommit   = errors.New("failed to commit transaction")
	ErrTransactionRollback = errors.New("failed to rollback transaction")
)
