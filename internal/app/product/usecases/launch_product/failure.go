package launch_product

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// FailureKind classifies why a launch was aborted. It is logged, never returned to callers.
type FailureKind string

const (
	FailureDuplicate  FailureKind = "duplicate"
	FailureNotFound   FailureKind = "not_found"
	FailureValidation FailureKind = "validation"
	FailureUnexpected FailureKind = "unexpected"
)

// Classify maps a step error onto a FailureKind.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, domain.ErrDuplicateProductName):
		return FailureDuplicate
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrUserNotFound):
		return FailureNotFound
	case domain.IsValidation(err), domain.IsBusinessRule(err):
		return FailureValidation
	default:
		return FailureUnexpected
	}
}

// message returns the caller-facing message for a failure kind.
func (k FailureKind) message() string {
	if k == FailureDuplicate {
		return MessageDuplicateProduct
	}
	return MessageLaunchFailed
}

// stepPanic wraps a value recovered from a panicking step.
type stepPanic struct {
	step  string
	value any
}

func (p *stepPanic) Error() string {
	return fmt.Sprintf("step %s panicked: %v", p.step, p.value)
}
