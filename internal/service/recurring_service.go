package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// defaultRunHour is the UTC hour a rule first fires on its start date.
const defaultRunHour = 9

// RecurringService manages recurring rules and the due scan that turns due
// cycles into real ledger rows.
type RecurringService struct {
	users      user.IUserTable
	wallets    wallet.IWalletTable
	categories category.ICategoryTable
	rules      recurring.IRecurringTable
	fx         fxResolver
	ops        Processor
	now        func() time.Time
}

func NewRecurringService(
	users user.IUserTable,
	wallets wallet.IWalletTable,
	categories category.ICategoryTable,
	rules recurring.IRecurringTable,
	fx fxResolver,
	ops Processor,
) *RecurringService {
	return &RecurringService{
		users:      users,
		wallets:    wallets,
		categories: categories,
		rules:      rules,
		fx:         fx,
		ops:        ops,
		now:        time.Now,
	}
}

// CreateRuleInput is the input for a recurring rule.
type CreateRuleInput struct {
	WalletID   uuid.UUID
	CategoryID *uuid.UUID
	Type       transaction.TxType
	Amount     decimal.Decimal
	Merchant   string
	Note       string
	Frequency  recurring.Frequency
	Interval   int
	StartDate  time.Time
	EndDate    *time.Time
}

func (s *RecurringService) CreateRule(ctx context.Context, ownerID uuid.UUID, in CreateRuleInput) (*recurring.Rule, error) {
	v := &validator{}
	v.checkf(in.Type == transaction.TypeExpense || in.Type == transaction.TypeIncome,
		"type must be expense or income")
	v.checkf(in.Amount.IsPositive(), "amount must be > 0")
	v.checkf(hasAtMostTwoDecimals(in.Amount), "amount must have at most 2 decimal places")
	v.checkf(in.Frequency == recurring.FreqDaily || in.Frequency == recurring.FreqWeekly || in.Frequency == recurring.FreqMonthly,
		"frequency must be daily, weekly or monthly")
	v.checkf(in.Interval >= 1, "interval must be at least 1")
	v.checkf(!in.StartDate.IsZero(), "start_date is required")
	if in.EndDate != nil {
		v.checkf(!in.EndDate.Before(in.StartDate), "end_date must not be before start_date")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	w, err := s.wallets.FindByID(ctx, in.WalletID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, &OwnershipError{Resource: "wallet"}
	}
	if in.CategoryID != nil {
		c, err := s.categories.FindByID(ctx, *in.CategoryID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if c.OwnerID != ownerID {
			return nil, &OwnershipError{Resource: "category"}
		}
	}

	start := dateOf(in.StartDate)
	act := &actions.CreateRecurring{
		Create: recurring.RuleCreate{
			OwnerID:    ownerID,
			WalletID:   in.WalletID,
			CategoryID: in.CategoryID,
			Type:       string(in.Type),
			Amount:     in.Amount,
			Merchant:   in.Merchant,
			Note:       in.Note,
			Frequency:  in.Frequency,
			Interval:   in.Interval,
			StartDate:  start,
			NextRunAt:  start.Add(defaultRunHour * time.Hour),
			EndDate:    in.EndDate,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		return nil, err
	}
	return act.Result, nil
}

func (s *RecurringService) ListRules(ctx context.Context, ownerID uuid.UUID) ([]*recurring.Rule, error) {
	return s.rules.ListByOwner(ctx, ownerID)
}

// RunDueReport summarizes one due scan.
type RunDueReport struct {
	Executed    int
	Deactivated int
	Skipped     int
	Failed      int
}

// RunDue materializes the current due cycle of every active rule. Each rule
// executes at most one cycle per scan: a rule that has fallen several cycles
// behind catches up across subsequent scans instead of flooding the ledger
// in one invocation. Each cycle is one action (one database transaction), so
// a failure in one rule never touches the progress of the others.
func (s *RecurringService) RunDue(ctx context.Context, asOf time.Time) (*RunDueReport, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	due, err := s.rules.ListDue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &RunDueReport{}
	for _, rule := range due {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		s.runRule(ctx, rule, report)
	}
	return report, nil
}

// runRule executes the rule's current cycle, which ListDue guarantees is due.
func (s *RecurringService) runRule(ctx context.Context, rule *recurring.Rule, report *RunDueReport) {
	cursor := rule.NextRunAt
	if rule.EndDate != nil && dateOf(cursor).After(dateOf(*rule.EndDate)) {
		act := &actions.DeactivateRecurring{RuleID: rule.ID, Cursor: cursor}
		if err := s.ops.Process(ctx, act); err != nil {
			if errors.Is(err, actions.ErrCursorMoved) {
				report.Skipped++
			} else {
				logrus.WithError(err).WithField("rule_id", rule.ID).Error("failed to deactivate recurring rule")
				report.Failed++
			}
			return
		}
		report.Deactivated++
		return
	}

	next := NextRunAfter(rule.Frequency, rule.Interval, cursor)
	create, err := s.buildCreate(ctx, rule, cursor)
	if err != nil {
		logrus.WithError(err).WithField("rule_id", rule.ID).Error("failed to prepare recurring transaction")
		report.Failed++
		return
	}

	act := &actions.ExecuteRecurring{
		RuleID:     rule.ID,
		Cursor:     cursor,
		NextCursor: next,
		Create:     *create,
	}
	if err := s.ops.Process(ctx, act); err != nil {
		if errors.Is(err, actions.ErrCursorMoved) {
			// Another scan owns this cycle.
			report.Skipped++
		} else {
			logrus.WithError(err).WithField("rule_id", rule.ID).Error("failed to execute recurring rule")
			report.Failed++
		}
		return
	}

	report.Executed++
}

func (s *RecurringService) buildCreate(ctx context.Context, rule *recurring.Rule, occurredAt time.Time) (*transaction.TransactionCreate, error) {
	w, err := s.wallets.FindByID(ctx, rule.WalletID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, rule.OwnerID)
	if err != nil {
		return nil, err
	}
	rate, err := s.fx.Resolve(ctx, dateOf(occurredAt), w.Currency, owner.BaseCurrency)
	if err != nil {
		return nil, err
	}

	return &transaction.TransactionCreate{
		OwnerID:    rule.OwnerID,
		WalletID:   rule.WalletID,
		Type:       transaction.TxType(rule.Type),
		OccurredAt: occurredAt,
		Amount:     rule.Amount,
		Currency:   w.Currency,
		FxRate:     rate,
		BaseAmount: round2(rule.Amount.Mul(rate)),
		CategoryID: rule.CategoryID,
		Merchant:   rule.Merchant,
		Note:       rule.Note,
	}, nil
}

// NextRunAfter computes the cursor following current. Daily and weekly are
// fixed-length steps. Monthly steps calendar months with the day clamped to
// 28, so a rule created on the 31st fires every month including February
// instead of drifting or skipping.
func NextRunAfter(freq recurring.Frequency, interval int, current time.Time) time.Time {
	if interval < 1 {
		interval = 1
	}
	switch freq {
	case recurring.FreqDaily:
		return current.AddDate(0, 0, interval)
	case recurring.FreqWeekly:
		return current.AddDate(0, 0, 7*interval)
	default:
		return addMonthsClamped(current, interval)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	day := t.Day()
	if day > 28 {
		day = 28
	}
	// Anchor on day 1 before adding so Go's date normalization cannot roll
	// the result into the following month.
	anchor := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	next := anchor.AddDate(0, months, 0)
	return time.Date(next.Year(), next.Month(), day, next.Hour(), next.Minute(), next.Second(), next.Nanosecond(), next.Location())
}
