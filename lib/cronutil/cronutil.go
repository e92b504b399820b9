// Package cronutil is a convenience layer over lib/cron: one-shot
// validation, formatting, fire-time and satisfied-by checks that take the
// schedule as a string. Callers evaluating the same schedule repeatedly
// should compile it once with cron.Parse, or use a Cache.
package cronutil

import (
	"fmt"
	"time"

	"github.com/shenjy24/quartzcron/lib/cron"
)

// TimeLayout is the layout used by the string-returning helpers.
const TimeLayout = "2006-01-02 15:04:05"

// IsValidExpression reports whether the expression compiles.
func IsValidExpression(expr string) bool {
	return cron.Validate(expr) == nil
}

// FormatExpression compiles the expression and returns its canonical form.
func FormatExpression(expr string) (string, error) {
	cs, err := cron.Parse(expr)
	if err != nil {
		return "", err
	}
	return cs.String(), nil
}

// NextTime returns the next fire time strictly after from. A zero from
// means now.
func NextTime(expr string, from time.Time) (time.Time, error) {
	cs, err := cron.Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	if from.IsZero() {
		from = time.Now()
	}
	return cs.Next(from)
}

// NextTimes returns the next count fire times strictly after from, each
// result feeding the next search. A zero from means now; count must be
// at least 1.
func NextTimes(expr string, from time.Time, count int) ([]time.Time, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be greater than 0, got %d", count)
	}
	cs, err := cron.Parse(expr)
	if err != nil {
		return nil, err
	}
	if from.IsZero() {
		from = time.Now()
	}

	times := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		next, err := cs.Next(from)
		if err != nil {
			return nil, err
		}
		times = append(times, next)
		from = next
	}
	return times, nil
}

// PrevTime returns the last fire time strictly before the given instant,
// found by a true backward search. A zero before means now.
func PrevTime(expr string, before time.Time) (time.Time, error) {
	cs, err := cron.Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	if before.IsZero() {
		before = time.Now()
	}
	return cs.Prev(before)
}

// IsSatisfiedBy reports whether the instant satisfies the expression.
func IsSatisfiedBy(expr string, t time.Time) (bool, error) {
	cs, err := cron.Parse(expr)
	if err != nil {
		return false, err
	}
	return cs.IsSatisfiedBy(t), nil
}

// FormatTime renders an instant with TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// NextTimeString is NextTime rendered with TimeLayout.
func NextTimeString(expr string, from time.Time) (string, error) {
	next, err := NextTime(expr, from)
	if err != nil {
		return "", err
	}
	return FormatTime(next), nil
}

// NextTimeStrings is NextTimes rendered with TimeLayout.
func NextTimeStrings(expr string, from time.Time, count int) ([]string, error) {
	times, err := NextTimes(expr, from, count)
	if err != nil {
		return nil, err
	}
	strs := make([]string, len(times))
	for i, t := range times {
		strs[i] = FormatTime(t)
	}
	return strs, nil
}

// PrevTimeString is PrevTime rendered with TimeLayout.
func PrevTimeString(expr string, before time.Time) (string, error) {
	prev, err := PrevTime(expr, before)
	if err != nil {
		return "", err
	}
	return FormatTime(prev), nil
}
