package sthree

import (
	"github.com/aws/aws-sdk-go/aws/awserr"

	"github.com/mlcup/dvcboot/pkg/storage"
)

// mapError translates AWS request failures into the package's error
// vocabulary, passing unknown errors through unchanged.
func mapError(err error) error {
	rerr, ok := err.(awserr.RequestFailure)
	if !ok {
		return err
	}
	switch rerr.StatusCode() {
	case 404:
		return storage.ErrNotFound
	case 401, 403:
		return storage.ErrForbidden
	default:
		return err
	}
}
