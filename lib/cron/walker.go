package cron

import "time"

// The walker performs a bounded field-carry search over calendar
// components. Each failed field advances (or, going backward, retreats)
// the coarsest component it can and resets everything finer, then the
// whole candidate is re-validated from the year down. Termination is
// guaranteed by the year bounds.

// next finds the first fire time strictly after the given instant.
func (cs *CronSchedule) next(after time.Time) (time.Time, error) {
	loc := after.Location()

	// Round up to the next whole second; the starting instant itself is
	// never a candidate.
	t := after.Truncate(time.Second).Add(time.Second)
	year, m, day := t.Date()
	month := int(m)
	hour, minute, second := t.Clock()

	for {
		if year > maxYear {
			return time.Time{}, ErrExhausted
		}
		if !contains(cs.years, year) {
			next, ok := nextValue(cs.years, year)
			if !ok {
				return time.Time{}, ErrExhausted
			}
			year, month, day = next, 1, 1
			hour, minute, second = 0, 0, 0
			continue
		}

		if !contains(cs.months, month) {
			next, ok := nextValue(cs.months, month+1)
			if !ok {
				year++
				month, day = 1, 1
				hour, minute, second = 0, 0, 0
				continue
			}
			month, day = next, 1
			hour, minute, second = 0, 0, 0
			continue
		}

		if day > daysInMonth(year, month) || !cs.dayMatches(year, month, day) {
			day++
			if day > daysInMonth(year, month) {
				day = 1
				month++
				if month > 12 {
					month = 1
					year++
				}
			}
			hour, minute, second = 0, 0, 0
			continue
		}

		if !contains(cs.hours, hour) {
			next, ok := nextValue(cs.hours, hour)
			if !ok {
				day++
				hour, minute, second = 0, 0, 0
				continue
			}
			hour, minute, second = next, 0, 0
			continue
		}

		if !contains(cs.minutes, minute) {
			next, ok := nextValue(cs.minutes, minute)
			if !ok {
				hour++
				minute, second = 0, 0
				continue
			}
			minute, second = next, 0
			continue
		}

		if !contains(cs.seconds, second) {
			next, ok := nextValue(cs.seconds, second)
			if !ok {
				minute++
				second = 0
				continue
			}
			second = next
			continue
		}

		return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), nil
	}
}

// prev finds the last fire time strictly before the given instant.
// Mirror of next: decrementing carries, with finer fields reset to their
// maxima instead of their minima.
func (cs *CronSchedule) prev(before time.Time) (time.Time, error) {
	loc := before.Location()

	// Round down to the previous whole second strictly before the
	// starting instant.
	t := before.Add(-time.Nanosecond).Truncate(time.Second)
	year, m, day := t.Date()
	month := int(m)
	hour, minute, second := t.Clock()

	for {
		if year < minYear {
			return time.Time{}, ErrExhausted
		}
		if !contains(cs.years, year) {
			prev, ok := prevValue(cs.years, year)
			if !ok {
				return time.Time{}, ErrExhausted
			}
			year, month = prev, 12
			day = daysInMonth(year, month)
			hour, minute, second = 23, 59, 59
			continue
		}

		if !contains(cs.months, month) {
			prev, ok := prevValue(cs.months, month-1)
			if !ok {
				year--
				month = 12
				day = daysInMonth(year, month)
				hour, minute, second = 23, 59, 59
				continue
			}
			month = prev
			day = daysInMonth(year, month)
			hour, minute, second = 23, 59, 59
			continue
		}

		if day < 1 || !cs.dayMatches(year, month, day) {
			day--
			if day < 1 {
				month--
				if month < 1 {
					month = 12
					year--
				}
				day = daysInMonth(year, month)
			}
			hour, minute, second = 23, 59, 59
			continue
		}

		if !contains(cs.hours, hour) {
			prev, ok := prevValue(cs.hours, hour)
			if !ok {
				day--
				hour, minute, second = 23, 59, 59
				continue
			}
			hour, minute, second = prev, 59, 59
			continue
		}

		if !contains(cs.minutes, minute) {
			prev, ok := prevValue(cs.minutes, minute)
			if !ok {
				hour--
				minute, second = 59, 59
				continue
			}
			minute, second = prev, 59
			continue
		}

		if !contains(cs.seconds, second) {
			prev, ok := prevValue(cs.seconds, second)
			if !ok {
				minute--
				second = 59
				continue
			}
			second = prev
			continue
		}

		return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), nil
	}
}

// dayMatches handles the special day-of-month vs day-of-week logic.
//
// Cron standard behavior:
// - If both day fields are restricted: match if EITHER matches (OR logic)
// - If only one is restricted: match on that field only
// - If neither is restricted: match any day
func (cs *CronSchedule) dayMatches(year, month, day int) bool {
	domRestricted := cs.dom.restricted()
	dowRestricted := cs.dow.restricted()

	switch {
	case domRestricted && dowRestricted:
		return cs.domMatches(year, month, day) || cs.dowMatches(year, month, day)
	case domRestricted:
		return cs.domMatches(year, month, day)
	case dowRestricted:
		return cs.dowMatches(year, month, day)
	}
	return true
}

func (cs *CronSchedule) domMatches(year, month, day int) bool {
	switch cs.dom.kind {
	case domValues:
		return contains(cs.dom.values, day)
	case domLast:
		return day == daysInMonth(year, month)
	case domLastWeekday:
		return day == lastWeekdayOfMonth(year, month)
	case domNearestWeekday:
		// A W target beyond the month's length never fires that month;
		// the walker rolls over naturally.
		if cs.dom.day > daysInMonth(year, month) {
			return false
		}
		return day == nearestWeekday(year, month, cs.dom.day)
	}
	return true
}

func (cs *CronSchedule) dowMatches(year, month, day int) bool {
	weekday := weekdayOf(year, month, day)
	switch cs.dow.kind {
	case dowValues:
		return contains(cs.dow.values, weekday)
	case dowLast:
		// Last occurrence: no same weekday a week later in this month.
		return weekday == cs.dow.weekday && day+7 > daysInMonth(year, month)
	case dowNth:
		// Months lacking the nth occurrence simply do not fire.
		return weekday == cs.dow.weekday && (day-1)/7+1 == cs.dow.nth
	}
	return true
}
