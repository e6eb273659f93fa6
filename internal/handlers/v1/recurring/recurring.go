package recurring

import (
	"time"

	"github.com/satang-labs/ledger-server/internal/storage/recurring"
)

const dateLayout = "2006-01-02"

// Rule is the API response model for a recurring rule.
type Rule struct {
	ID         string  `json:"id" doc:"Rule UUID"`
	WalletID   string  `json:"walletID" doc:"Wallet UUID"`
	CategoryID *string `json:"categoryID,omitempty" doc:"Category UUID"`
	Type       string  `json:"type" doc:"expense or income"`
	Amount     string  `json:"amount" doc:"Decimal amount in the wallet currency"`
	Merchant   string  `json:"merchant,omitempty" doc:"Merchant applied to generated transactions"`
	Note       string  `json:"note,omitempty" doc:"Note applied to generated transactions"`
	Frequency  string  `json:"frequency" doc:"daily, weekly or monthly"`
	Interval   int     `json:"interval" doc:"Periods between runs"`
	StartDate  string  `json:"startDate" doc:"First run date, YYYY-MM-DD"`
	NextRunAt  string  `json:"nextRunAt" doc:"RFC3339 time of the next due cycle"`
	EndDate    *string `json:"endDate,omitempty" doc:"Last run date, YYYY-MM-DD"`
	IsActive   bool    `json:"isActive" doc:"False once the rule has expired"`
}

func toAPI(r *recurring.Rule) Rule {
	out := Rule{
		ID:        r.ID.String(),
		WalletID:  r.WalletID.String(),
		Type:      r.Type,
		Amount:    r.Amount.String(),
		Merchant:  r.Merchant,
		Note:      r.Note,
		Frequency: string(r.Frequency),
		Interval:  r.Interval,
		StartDate: r.StartDate.Format(dateLayout),
		NextRunAt: r.NextRunAt.Format(time.RFC3339),
		IsActive:  r.IsActive,
	}
	if r.CategoryID != nil {
		s := r.CategoryID.String()
		out.CategoryID = &s
	}
	if r.EndDate != nil {
		s := r.EndDate.Format(dateLayout)
		out.EndDate = &s
	}
	return out
}
