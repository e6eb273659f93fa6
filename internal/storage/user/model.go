package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User is an owner row. Authentication lives elsewhere; the ledger only
// needs the identity and the base currency every conversion targets.
type User struct {
	ID           uuid.UUID
	Email        string
	BaseCurrency string
	CreatedAt    time.Time
}

// IUserTable defines the interface for user storage operations.
//
//go:generate mockery --name IUserTable --output mock_IUserTable.go
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
