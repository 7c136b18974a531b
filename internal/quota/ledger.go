// Package quota decides whether an account may run another generation.
package quota

import (
	"context"
	"fmt"
)

const (
	// FreeLimit is the number of generations a free account may run.
	FreeLimit = 5

	// Unlimited marks Remaining and Limit for uncapped plans.
	Unlimited = -1
)

// Counter returns how many generation records an account owns.
type Counter interface {
	CountDescriptions(ctx context.Context, accountID int64) (int64, error)
}

// Report is the ledger's verdict for one account.
type Report struct {
	Plan      Plan `json:"plan"`
	Allowed   bool `json:"allowed"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// IsUnlimited reports whether the plan has no cap.
func (r Report) IsUnlimited() bool {
	return r.Remaining == Unlimited
}

// Ledger reports quota usage. It never blocks anything itself; callers must
// refuse the action when Allowed is false.
type Ledger struct {
	counter Counter
}

// NewLedger creates a ledger backed by counter.
func NewLedger(counter Counter) *Ledger {
	return &Ledger{counter: counter}
}

// Check counts the account's records and evaluates them against plan.
func (l *Ledger) Check(ctx context.Context, accountID int64, plan Plan) (Report, error) {
	used, err := l.counter.CountDescriptions(ctx, accountID)
	if err != nil {
		return Report{}, fmt.Errorf("count descriptions: %w", err)
	}
	return Evaluate(plan, int(used)), nil
}

// Evaluate computes the verdict for a known usage count.
func Evaluate(plan Plan, used int) Report {
	if !plan.Limited() {
		return Report{
			Plan:      plan,
			Allowed:   true,
			Used:      used,
			Remaining: Unlimited,
			Limit:     Unlimited,
		}
	}

	return Report{
		Plan:      plan,
		Allowed:   used < FreeLimit,
		Used:      used,
		Remaining: max(0, FreeLimit-used),
		Limit:     FreeLimit,
	}
}
