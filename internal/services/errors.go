package services

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fyno/internal/metrics"
	apperrors "fyno/pkg/errors"
)

var tracer = otel.Tracer("fyno/services")

// StorageFailureMessage is the only detail callers see for storage errors.
const StorageFailureMessage = "Something went wrong. Please try again later."

// storageFailure records and wraps a store error for the given operation.
func storageFailure(span trace.Span, operation string, err error) *apperrors.AppError {
	metrics.RecordStorageFailure(operation)
	span.RecordError(err)
	span.SetStatus(codes.Error, "storage failure")
	return apperrors.Storage(StorageFailureMessage, err)
}

// validationFailure records a rejected request.
func validationFailure(span trace.Span, operation string, err *apperrors.AppError) *apperrors.AppError {
	metrics.RecordValidationFailure(operation, err.Fields)
	span.SetStatus(codes.Error, "validation failure")
	return err
}
