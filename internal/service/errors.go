package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-roster-api/internal/repository"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

// storeError normalises a repository failure. Missing records become
// NOT_FOUND with notFound as the message; everything else is opaque.
func storeError(err error, notFound, failed string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case errors.Is(err, repository.ErrUnavailable):
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, failed)
	default:
		return appErrors.Internal(err, failed)
	}
}

// writeError is storeError for writes, reporting a uniqueness failure as
// CONFLICT with the conflict message.
func writeError(err error, conflict, notFound, failed string) error {
	if errors.Is(err, repository.ErrConflict) {
		return appErrors.Clone(appErrors.ErrConflict, conflict)
	}
	return storeError(err, notFound, failed)
}

// validationError summarises validator failures into one message.
func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return appErrors.Validation(err, message+": "+fe.Field()+" failed "+fe.Tag())
	}
	return appErrors.Validation(err, message)
}
