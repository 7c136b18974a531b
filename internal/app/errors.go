package app

import (
	"errors"
	"fmt"

	"github.com/abdulachik/descricoes/internal/quota"
)

// ErrQuotaExceeded matches every QuotaExceededError.
var ErrQuotaExceeded = errors.New("generation quota exceeded")

// ValidationError is reported before any side effect happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// QuotaExceededError carries the ledger report that denied the request.
type QuotaExceededError struct {
	Report quota.Report
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("plan %s allows %d descriptions, %d used", e.Report.Plan, e.Report.Limit, e.Report.Used)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
