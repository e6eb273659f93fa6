package actions

import (
	"context"
	"errors"

	"github.com/satang-labs/ledger-server/internal/storage"
)

// IAction is one unit of work. Perform runs inside a single database
// transaction; returning an error rolls back everything the action wrote.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// ErrCursorMoved means a compare-and-swap on a recurring rule's cursor
// found the cursor already advanced: a concurrent scan claimed the cycle.
var ErrCursorMoved = errors.New("recurring cursor moved")

// ErrNoRowsUpdated means a guarded update matched nothing.
var ErrNoRowsUpdated = errors.New("no rows updated")
