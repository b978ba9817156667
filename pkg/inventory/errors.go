package inventory

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the two error conditions the service reports to
// callers. Anything else that goes wrong is an infrastructure fault and
// is returned as a plain error.
type Kind uint8

const (
	KindNotFound Kind = iota + 1
	KindInvalidOperation
)

// Error is a domain error with a message meant for the caller verbatim.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFoundError builds a KindNotFound error.
func NotFoundError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidOperationError builds a KindInvalidOperation error.
func InvalidOperationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidOperation, Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a KindNotFound domain error.
func IsNotFound(err error) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == KindNotFound
}

// IsInvalidOperation reports whether err is a KindInvalidOperation domain error.
func IsInvalidOperation(err error) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == KindInvalidOperation
}

// ErrQuantityOverflow reports a restock that would carry a quantity past
// the uint32 range. It is a fault, not a domain error.
var ErrQuantityOverflow = errors.New("product quantity overflow")
