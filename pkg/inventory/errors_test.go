package inventory

import (
	"testing"

	"github.com/pkg/errors"
)

func TestErrorKinds(t *testing.T) {
	notFound := NotFoundError("A product with id=%d was not found", 9)
	if !IsNotFound(notFound) {
		t.Error("Expected IsNotFound for a not-found error")
	}
	if IsInvalidOperation(notFound) {
		t.Error("A not-found error is not an invalid operation")
	}
	if notFound.Error() != "A product with id=9 was not found" {
		t.Errorf("Message = %q", notFound.Error())
	}

	invalid := InvalidOperationError("Product name cannot be empty.")
	if !IsInvalidOperation(invalid) {
		t.Error("Expected IsInvalidOperation for an invalid-operation error")
	}
	if IsNotFound(invalid) {
		t.Error("An invalid-operation error is not a not-found error")
	}
}

func TestErrorKinds_Wrapped(t *testing.T) {
	wrapped := errors.Wrap(NotFoundError("A product with id=%d was not found", 3), "load product")
	if !IsNotFound(wrapped) {
		t.Error("Kind checks should see through wrapping")
	}

	if IsNotFound(errors.New("disk unavailable")) {
		t.Error("Plain errors carry no kind")
	}
	if IsInvalidOperation(ErrQuantityOverflow) {
		t.Error("Overflow is a fault, not a domain error")
	}
}
