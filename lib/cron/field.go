package cron

import (
	"slices"
	"time"
)

// Supported year bounds. A search that carries past either bound reports
// ErrExhausted instead of looping.
const (
	minYear = 1970
	maxYear = 2099
)

// domKind tags the compiled day-of-month constraint.
type domKind int

const (
	domAll            domKind = iota // *
	domUnspecified                   // ?
	domValues                        // value set
	domLast                          // L: last day of the month
	domLastWeekday                   // LW: last weekday of the month
	domNearestWeekday                // nW: nearest weekday to day n
)

// dowKind tags the compiled day-of-week constraint.
type dowKind int

const (
	dowAll         dowKind = iota // *
	dowUnspecified                // ?
	dowValues                     // value set (bare L compiles to {7})
	dowLast                       // nL: last weekday n of the month
	dowNth                        // n#k: k-th weekday n of the month
)

// domConstraint is the compiled day-of-month field. Exactly one kind per
// expression; values holds the set only for domValues, day holds the W
// target only for domNearestWeekday.
type domConstraint struct {
	kind   domKind
	values []int // 1-31
	day    int
}

// dowConstraint is the compiled day-of-week field. weekday and nth are
// meaningful for dowLast and dowNth only.
type dowConstraint struct {
	kind    dowKind
	values  []int // 1-7, 1=SUN
	weekday int
	nth     int
}

func (c domConstraint) restricted() bool {
	return c.kind != domAll && c.kind != domUnspecified
}

func (c dowConstraint) restricted() bool {
	return c.kind != dowAll && c.kind != dowUnspecified
}

// Equal reports whether two schedules compile to the same constraints.
// The original expression text is not compared.
func (cs *CronSchedule) Equal(other *CronSchedule) bool {
	return slices.Equal(cs.seconds, other.seconds) &&
		slices.Equal(cs.minutes, other.minutes) &&
		slices.Equal(cs.hours, other.hours) &&
		slices.Equal(cs.months, other.months) &&
		slices.Equal(cs.years, other.years) &&
		cs.dom.kind == other.dom.kind &&
		slices.Equal(cs.dom.values, other.dom.values) &&
		cs.dom.day == other.dom.day &&
		cs.dow.kind == other.dow.kind &&
		slices.Equal(cs.dow.values, other.dow.values) &&
		cs.dow.weekday == other.dow.weekday &&
		cs.dow.nth == other.dow.nth
}

// contains checks if a slice contains a value
func contains(slice []int, val int) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}

// nextValue returns the smallest element >= val in a sorted slice.
func nextValue(vals []int, val int) (int, bool) {
	for _, v := range vals {
		if v >= val {
			return v, true
		}
	}
	return 0, false
}

// prevValue returns the largest element <= val in a sorted slice.
func prevValue(vals []int, val int) (int, bool) {
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] <= val {
			return vals[i], true
		}
	}
	return 0, false
}

// isLeapYear checks if a year is a leap year
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the number of days in the given month and year.
func daysInMonth(year, month int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// weekdayOf returns the cron weekday number (1=SUN..7=SAT) of a date.
func weekdayOf(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()) + 1
}

// lastWeekdayOfMonth returns the last Monday-Friday day of the month.
func lastWeekdayOfMonth(year, month int) int {
	day := daysInMonth(year, month)
	for {
		switch weekdayOf(year, month, day) {
		case 1, 7: // Sunday, Saturday
			day--
		default:
			return day
		}
	}
}

// nearestWeekday returns the Monday-Friday day closest to the target day,
// never leaving the month: a Saturday target shifts back to Friday unless
// the target is the 1st (then forward to Monday), a Sunday target shifts
// forward to Monday unless the target is the last day (then back to
// Friday). The target must not exceed the month's length.
func nearestWeekday(year, month, target int) int {
	switch weekdayOf(year, month, target) {
	case 7: // Saturday
		if target > 1 {
			return target - 1
		}
		return target + 2
	case 1: // Sunday
		if target < daysInMonth(year, month) {
			return target + 1
		}
		return target - 2
	default:
		return target
	}
}
