package repositories

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
