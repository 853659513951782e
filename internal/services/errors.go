package service

import (
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// storeError converts repository failures into AppErrors. AppErrors raised
// inside a transaction pass through untouched.
func storeError(err error, notFound, failed string) error {
	if _, ok := appErrors.IsAppError(err); ok {
		return err
	}

	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError(notFound).WithError(err)
	}

	return appErrors.DatabaseError(failed).WithError(err)
}
