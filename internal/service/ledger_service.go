package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

const defaultListLimit = 20

// fxResolver is the slice of FxService the ledger needs.
type fxResolver interface {
	Resolve(ctx context.Context, on time.Time, from, to string) (decimal.Decimal, error)
}

// LedgerService creates single transactions and atomic transfer pairs.
// Every movement is converted into the owner's base currency at creation
// time and the rate snapshotted onto the row.
type LedgerService struct {
	users        user.IUserTable
	wallets      wallet.IWalletTable
	categories   category.ICategoryTable
	transactions transaction.ITransactionTable
	fx           fxResolver
	ops          Processor
	now          func() time.Time
}

func NewLedgerService(
	users user.IUserTable,
	wallets wallet.IWalletTable,
	categories category.ICategoryTable,
	transactions transaction.ITransactionTable,
	fx fxResolver,
	ops Processor,
) *LedgerService {
	return &LedgerService{
		users:        users,
		wallets:      wallets,
		categories:   categories,
		transactions: transactions,
		fx:           fx,
		ops:          ops,
		now:          time.Now,
	}
}

// CreateTransactionInput is the input for a single expense or income row.
// Any caller-supplied currency is ignored: the wallet's currency always
// wins.
type CreateTransactionInput struct {
	WalletID   uuid.UUID
	Type       transaction.TxType
	OccurredAt time.Time // zero value defaults to now
	Amount     decimal.Decimal
	CategoryID *uuid.UUID
	Merchant   string
	Note       string
}

func (s *LedgerService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, in CreateTransactionInput) (*transaction.Transaction, error) {
	v := &validator{}
	v.checkf(in.Type == transaction.TypeExpense || in.Type == transaction.TypeIncome,
		"type must be expense or income")
	v.checkf(in.Amount.IsPositive(), "amount must be > 0")
	v.checkf(hasAtMostTwoDecimals(in.Amount), "amount must have at most 2 decimal places")
	if err := v.err(); err != nil {
		return nil, err
	}

	w, err := s.ownedWallet(ctx, ownerID, in.WalletID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if _, err := s.ownedCategory(ctx, ownerID, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	rate, err := s.fx.Resolve(ctx, dateOf(occurredAt), w.Currency, owner.BaseCurrency)
	if err != nil {
		return nil, err
	}

	act := &actions.CreateTransaction{
		Create: transaction.TransactionCreate{
			OwnerID:    ownerID,
			WalletID:   w.ID,
			Type:       in.Type,
			OccurredAt: occurredAt,
			Amount:     in.Amount,
			Currency:   w.Currency,
			FxRate:     rate,
			BaseAmount: round2(in.Amount.Mul(rate)),
			CategoryID: in.CategoryID,
			Merchant:   in.Merchant,
			Note:       in.Note,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		return nil, err
	}
	return act.Result, nil
}

// CreateTransferInput is the input for moving money between two wallets of
// the same owner.
type CreateTransferInput struct {
	FromWalletID uuid.UUID
	ToWalletID   uuid.UUID
	Amount       decimal.Decimal
	OccurredAt   time.Time // zero value defaults to now
	Merchant     string
	Note         string
}

// TransferResult is the pair of legs plus the link created for one
// transfer.
type TransferResult struct {
	OutTx *transaction.Transaction
	InTx  *transaction.Transaction
	Link  *transaction.TransferLink
}

// CreateTransfer converts the outgoing amount through three independent
// rate paths: from->base for the out leg, from->to for the credited amount,
// and to->base for the in leg. The two base amounts are not forced to be
// equal; when the three daily rates are not mutually consistent the legs
// diverge, matching real cross-rate transfer mechanics. All three rates are
// resolved up front, so a missing rate aborts before anything is written,
// and the two rows plus the link are committed as one transaction.
func (s *LedgerService) CreateTransfer(ctx context.Context, ownerID uuid.UUID, in CreateTransferInput) (*TransferResult, error) {
	v := &validator{}
	v.checkf(in.FromWalletID != in.ToWalletID, "from_wallet and to_wallet must be different")
	v.checkf(in.Amount.IsPositive(), "amount must be > 0")
	v.checkf(hasAtMostTwoDecimals(in.Amount), "amount must have at most 2 decimal places")
	if err := v.err(); err != nil {
		return nil, err
	}

	fromWallet, err := s.ownedWallet(ctx, ownerID, in.FromWalletID)
	if err != nil {
		return nil, err
	}
	toWallet, err := s.ownedWallet(ctx, ownerID, in.ToWalletID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}
	date := dateOf(occurredAt)

	fxOut, err := s.fx.Resolve(ctx, date, fromWallet.Currency, owner.BaseCurrency)
	if err != nil {
		return nil, err
	}
	baseOut := round2(in.Amount.Mul(fxOut))

	// Same currency credits the amount unchanged; an unnecessary
	// conversion step would only introduce rounding drift.
	amountIn := in.Amount
	if fromWallet.Currency != toWallet.Currency {
		fxCross, err := s.fx.Resolve(ctx, date, fromWallet.Currency, toWallet.Currency)
		if err != nil {
			return nil, err
		}
		amountIn = round2(in.Amount.Mul(fxCross))
	}

	fxIn, err := s.fx.Resolve(ctx, date, toWallet.Currency, owner.BaseCurrency)
	if err != nil {
		return nil, err
	}
	baseIn := round2(amountIn.Mul(fxIn))

	merchant := in.Merchant
	if merchant == "" {
		merchant = "Transfer"
	}

	act := &actions.CreateTransfer{
		Out: transaction.TransactionCreate{
			OwnerID:    ownerID,
			WalletID:   fromWallet.ID,
			Type:       transaction.TypeTransferOut,
			OccurredAt: occurredAt,
			Amount:     in.Amount,
			Currency:   fromWallet.Currency,
			FxRate:     fxOut,
			BaseAmount: baseOut,
			Merchant:   merchant,
			Note:       in.Note,
		},
		In: transaction.TransactionCreate{
			OwnerID:    ownerID,
			WalletID:   toWallet.ID,
			Type:       transaction.TypeTransferIn,
			OccurredAt: occurredAt,
			Amount:     amountIn,
			Currency:   toWallet.Currency,
			FxRate:     fxIn,
			BaseAmount: baseIn,
			Merchant:   merchant,
			Note:       in.Note,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		return nil, err
	}
	return &TransferResult{OutTx: act.OutTx, InTx: act.InTx, Link: act.Link}, nil
}

// SoftDeleteTransaction flags an expense or income row as deleted. Transfer
// legs cannot be deleted individually: that would leave the paired leg and
// the link dangling, so transfers are deleted only through DeleteTransfer.
func (s *LedgerService) SoftDeleteTransaction(ctx context.Context, ownerID, txID uuid.UUID) error {
	tx, err := s.transactions.FindByID(ctx, txID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if tx.OwnerID != ownerID || tx.IsDeleted {
		return ErrNotFound
	}
	// The link table is authoritative for what counts as a leg, so a linked
	// row is protected even if its type were ever wrong.
	if _, err := s.transactions.FindLinkByTxID(ctx, txID); err == nil {
		return &ValidationError{Violations: []string{
			"transfer legs cannot be deleted individually; delete the transfer instead",
		}}
	} else if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	act := &actions.SoftDeleteTransactions{IDs: []uuid.UUID{txID}}
	if err := s.ops.Process(ctx, act); err != nil {
		if errors.Is(err, actions.ErrNoRowsUpdated) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteTransfer soft deletes both legs of a transfer atomically.
func (s *LedgerService) DeleteTransfer(ctx context.Context, ownerID, linkID uuid.UUID) error {
	link, err := s.transactions.FindLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	outTx, err := s.transactions.FindByID(ctx, link.OutTxID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if outTx.OwnerID != ownerID {
		return ErrNotFound
	}

	act := &actions.SoftDeleteTransactions{IDs: []uuid.UUID{link.OutTxID, link.InTxID}}
	if err := s.ops.Process(ctx, act); err != nil {
		if errors.Is(err, actions.ErrNoRowsUpdated) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// TransactionCursor identifies a position in a paginated result set and
// carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// ListTransactionsInput narrows a listing. Deleted rows are never returned.
type ListTransactionsInput struct {
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *transaction.TxType
}

// ListTransactions returns a page of the owner's transactions using
// cursor-based pagination.
func (s *LedgerService) ListTransactions(ctx context.Context, ownerID uuid.UUID, in ListTransactionsInput, cursor *TransactionCursor) ([]*transaction.Transaction, *TransactionCursor, error) {
	limit := defaultListLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.Filter{
		OwnerID:         ownerID,
		WalletID:        in.WalletID,
		CategoryID:      in.CategoryID,
		Type:            in.Type,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	return rows, nextCursor, nil
}

func (s *LedgerService) ownedWallet(ctx context.Context, ownerID, walletID uuid.UUID) (*wallet.Wallet, error) {
	w, err := s.wallets.FindByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, &OwnershipError{Resource: "wallet"}
	}
	return w, nil
}

func (s *LedgerService) ownedCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (*category.Category, error) {
	c, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, &OwnershipError{Resource: "category"}
	}
	return c, nil
}
