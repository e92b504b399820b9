// Package cron parses and evaluates Quartz-style cron expressions.
//
// An expression has 6 or 7 whitespace-separated fields:
//
//	second minute hour day-of-month month day-of-week [year]
//
// Field ranges are 0-59, 0-59, 0-23, 1-31, 1-12, 1-7 (1=SUN) and
// 1970-2099. Every field accepts * , - and /. Day-of-month additionally
// accepts ? L and W; day-of-week accepts ? L and #. Months may be named
// JAN-DEC and weekdays SUN-SAT, case-insensitively.
//
// When both day fields are restricted the expression matches a date when
// EITHER field matches, following the de-facto cron convention. Using ?
// in one day field while the other is * is conventional but not enforced;
// both spellings compile to an unrestricted field.
package cron

import "time"

// CronSchedule is a compiled cron expression. It is immutable once built
// and safe for concurrent use.
type CronSchedule struct {
	// Plain fields store all valid values, sorted ascending.
	seconds []int // 0-59
	minutes []int // 0-59
	hours   []int // 0-23
	months  []int // 1-12
	years   []int // 1970-2099

	// The day pair carries special rules (L, W, #) beyond value sets.
	dom domConstraint
	dow dowConstraint

	// Store original expression for debugging
	original string
}

// Parse parses a cron expression and validates all constraints.
// Returns error if:
// - Format is invalid (not 6 or 7 fields)
// - Any field contains invalid syntax or a character it does not accept
// - Any value is outside its field's range
func Parse(expr string) (*CronSchedule, error) {
	return parse(expr)
}

// Validate parses the expression and discards the result, reporting the
// first structural or range violation.
func Validate(expr string) error {
	_, err := parse(expr)
	return err
}

// Next returns the next time the schedule fires strictly after the given
// instant. The instant itself is never returned, even when it satisfies
// the expression. Returns ErrExhausted when no fire time exists on or
// before year 2099.
func (cs *CronSchedule) Next(after time.Time) (time.Time, error) {
	return cs.next(after)
}

// Prev returns the last time the schedule fired strictly before the given
// instant. Exact mirror of Next; returns ErrExhausted when no fire time
// exists on or after year 1970.
func (cs *CronSchedule) Prev(before time.Time) (time.Time, error) {
	return cs.prev(before)
}

// IsSatisfiedBy reports whether the instant, truncated to whole seconds,
// satisfies every field of the schedule. No search is performed.
func (cs *CronSchedule) IsSatisfiedBy(t time.Time) bool {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	return contains(cs.years, year) &&
		contains(cs.months, int(month)) &&
		cs.dayMatches(year, int(month), day) &&
		contains(cs.hours, hour) &&
		contains(cs.minutes, minute) &&
		contains(cs.seconds, second)
}

// String returns the canonical form of the schedule. The year field is
// emitted only when it is restricted.
func (cs *CronSchedule) String() string {
	return cs.format()
}
