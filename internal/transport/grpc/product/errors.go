package product

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// mapError translates domain sentinel errors into proper gRPC status codes.
// Unknown errors become codes.Internal with a generic message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())

	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, spanner.ErrRowNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrDuplicateProductName):
		return status.Error(codes.AlreadyExists, err.Error())

	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())

	case domain.IsBusinessRule(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, "internal error")
}
