package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// caller. Lookups scoped to another owner return this rather than an
// ownership error, so nothing about other users' data leaks.
var ErrNotFound = errors.New("not found")

// ValidationError reports every violated input constraint at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// OwnershipError means the caller referenced a resource that exists but
// belongs to someone else.
type OwnershipError struct {
	Resource string
}

func (e *OwnershipError) Error() string {
	return "you do not own this " + e.Resource
}

// FxRateMissingError carries the exact pair and date so the caller can seed
// the missing rate. It is never silently defaulted to 1.0.
type FxRateMissingError struct {
	Date time.Time
	From string
	To   string
}

func (e *FxRateMissingError) Error() string {
	return fmt.Sprintf("missing FX rate for %s: %s->%s; create it via /v1/fx-rates first",
		e.Date.Format("2006-01-02"), e.From, e.To)
}

// validator accumulates constraint violations so callers see the full list,
// not just the first failure.
type validator struct {
	violations []string
}

func (v *validator) checkf(ok bool, format string, args ...any) {
	if !ok {
		v.violations = append(v.violations, fmt.Sprintf(format, args...))
	}
}

func (v *validator) err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.violations}
}
