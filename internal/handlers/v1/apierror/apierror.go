// Package apierror maps service-layer errors onto HTTP errors so every
// handler reports the same status for the same failure class.
package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/service"
)

// Map converts a service error into a huma error. Unknown errors become a
// 500 with the given message; the underlying error is attached for the log,
// not echoed to the client.
func Map(err error, msg string) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		details := make([]error, 0, len(ve.Violations))
		for _, violation := range ve.Violations {
			details = append(details, errors.New(violation))
		}
		return huma.NewError(http.StatusUnprocessableEntity, "validation failed", details...)
	}

	var oe *service.OwnershipError
	if errors.As(err, &oe) {
		return huma.NewError(http.StatusForbidden, oe.Error())
	}

	var fe *service.FxRateMissingError
	if errors.As(err, &fe) {
		return huma.NewError(http.StatusUnprocessableEntity, fe.Error())
	}

	if errors.Is(err, service.ErrNotFound) {
		return huma.NewError(http.StatusNotFound, "not found")
	}

	return huma.NewError(http.StatusInternalServerError, msg, err)
}

// OwnerID parses the authenticated user ID forwarded by the gateway in the
// X-User-ID header.
func OwnerID(header string) (uuid.UUID, error) {
	id, err := uuid.FromString(header)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID header", err)
	}
	return id, nil
}
