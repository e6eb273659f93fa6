package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/currency"
	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// WalletService creates and lists wallets. The wallet currency must exist
// in the currency registry because every rate lookup and conversion keys on
// it.
type WalletService struct {
	currencies currency.ICurrencyTable
	wallets    wallet.IWalletTable
	ops        Processor
}

func NewWalletService(currencies currency.ICurrencyTable, wallets wallet.IWalletTable, ops Processor) *WalletService {
	return &WalletService{currencies: currencies, wallets: wallets, ops: ops}
}

// CreateWalletInput is the input for a new wallet.
type CreateWalletInput struct {
	Name           string
	Type           wallet.WalletType
	Currency       string
	OpeningBalance decimal.Decimal
}

func (s *WalletService) CreateWallet(ctx context.Context, ownerID uuid.UUID, in CreateWalletInput) (*wallet.Wallet, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Currency))

	v := &validator{}
	v.checkf(strings.TrimSpace(in.Name) != "", "name is required")
	v.checkf(in.Type == wallet.TypeCash || in.Type == wallet.TypeBank ||
		in.Type == wallet.TypeCredit || in.Type == wallet.TypeEWallet,
		"type must be cash, bank, credit or ewallet")
	v.checkf(len(code) == 3, "currency must be a 3-letter code")
	v.checkf(hasAtMostTwoDecimals(in.OpeningBalance), "opening_balance must have at most 2 decimal places")
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.currencies.FindByCode(ctx, code); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &ValidationError{Violations: []string{"unknown currency " + code}}
		}
		return nil, err
	}

	act := &actions.CreateWallet{
		Create: wallet.WalletCreate{
			OwnerID:        ownerID,
			Name:           strings.TrimSpace(in.Name),
			Type:           in.Type,
			Currency:       code,
			OpeningBalance: in.OpeningBalance,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, &ValidationError{Violations: []string{"a wallet with this name already exists"}}
		}
		return nil, err
	}
	return act.Result, nil
}

func (s *WalletService) ListWallets(ctx context.Context, ownerID uuid.UUID) ([]*wallet.Wallet, error) {
	return s.wallets.ListByOwner(ctx, ownerID)
}
