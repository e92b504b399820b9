package cron

import (
	"errors"
	"testing"
	"time"
)

// Test helpers

func mustParse(t *testing.T, expr string) *CronSchedule {
	t.Helper()
	cs, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", expr, err)
	}
	return cs
}

func makeTime(year, month, day, hour, minute, second int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

func assertNext(t *testing.T, expr string, after, expected time.Time) {
	t.Helper()
	cs := mustParse(t, expr)
	got, err := cs.Next(after)
	if err != nil {
		t.Fatalf("Next(%q, %v) unexpected error: %v", expr, after, err)
	}
	if !got.Equal(expected) {
		t.Errorf("Next(%q, %v) = %v, expected %v", expr, after, got, expected)
	}
}

func assertPrev(t *testing.T, expr string, before, expected time.Time) {
	t.Helper()
	cs := mustParse(t, expr)
	got, err := cs.Prev(before)
	if err != nil {
		t.Fatalf("Prev(%q, %v) unexpected error: %v", expr, before, err)
	}
	if !got.Equal(expected) {
		t.Errorf("Prev(%q, %v) = %v, expected %v", expr, before, got, expected)
	}
}

// TestNext covers forward search

func TestNext_FirstOfMonth(t *testing.T) {
	// 02:00 on the 1st of every month.
	assertNext(t, "0 0 2 1 * ? *",
		makeTime(2020, 4, 16, 0, 0, 0),
		makeTime(2020, 5, 1, 2, 0, 0))
}

func TestNext_WeekdaysAt1015_FromSaturday(t *testing.T) {
	// April 18, 2020 is a Saturday; the next weekday is Monday the 20th.
	assertNext(t, "0 15 10 ? * MON-FRI",
		makeTime(2020, 4, 18, 0, 0, 0),
		makeTime(2020, 4, 20, 10, 15, 0))
}

func TestNext_EverySecond(t *testing.T) {
	assertNext(t, "* * * * * ?",
		makeTime(2024, 1, 1, 10, 30, 45),
		makeTime(2024, 1, 1, 10, 30, 46))
}

func TestNext_EveryMinute(t *testing.T) {
	assertNext(t, "0 * * * * ?",
		makeTime(2024, 1, 1, 10, 30, 45),
		makeTime(2024, 1, 1, 10, 31, 0))
}

func TestNext_DailyAfterTargetTime(t *testing.T) {
	assertNext(t, "0 30 14 * * ?",
		makeTime(2024, 1, 1, 15, 0, 0),
		makeTime(2024, 1, 2, 14, 30, 0))
}

func TestNext_NeverReturnsTheStartingInstant(t *testing.T) {
	cs := mustParse(t, "0 30 14 * * ?")
	after := makeTime(2024, 1, 1, 14, 30, 0) // exactly a fire time

	got, err := cs.Next(after)
	if err != nil {
		t.Fatalf("Next unexpected error: %v", err)
	}
	if !got.After(after) {
		t.Errorf("Next returned %v, not strictly after %v", got, after)
	}
	if !got.Equal(makeTime(2024, 1, 2, 14, 30, 0)) {
		t.Errorf("Next = %v, expected next day", got)
	}
}

func TestNext_SubSecondReferenceRoundsUp(t *testing.T) {
	cs := mustParse(t, "* * * * * ?")
	after := time.Date(2024, 1, 1, 10, 0, 0, 500000000, time.UTC)

	got, err := cs.Next(after)
	if err != nil {
		t.Fatalf("Next unexpected error: %v", err)
	}
	if !got.Equal(makeTime(2024, 1, 1, 10, 0, 1)) {
		t.Errorf("Next = %v, expected 10:00:01", got)
	}
}

func TestNext_YearBoundaryCarry(t *testing.T) {
	assertNext(t, "0 0 0 * * ?",
		makeTime(2024, 12, 31, 10, 0, 0),
		makeTime(2025, 1, 1, 0, 0, 0))
}

func TestNext_LeapYear_Feb29(t *testing.T) {
	assertNext(t, "0 0 0 29 2 ?",
		makeTime(2024, 1, 1, 0, 0, 0),
		makeTime(2024, 2, 29, 0, 0, 0))
}

func TestNext_LeapYear_SkipNonLeapYears(t *testing.T) {
	assertNext(t, "0 0 0 29 2 ?",
		makeTime(2025, 1, 1, 0, 0, 0),
		makeTime(2028, 2, 29, 0, 0, 0))
}

func TestNext_Day31SkipsShortMonths(t *testing.T) {
	assertNext(t, "0 0 0 31 * ?",
		makeTime(2024, 4, 1, 0, 0, 0),
		makeTime(2024, 5, 31, 0, 0, 0))
}

func TestNext_RestrictedYearList(t *testing.T) {
	assertNext(t, "0 0 0 1 1 ? 2030,2040",
		makeTime(2024, 6, 1, 0, 0, 0),
		makeTime(2030, 1, 1, 0, 0, 0))
}

func TestNext_Exhausted_PastYearRange(t *testing.T) {
	cs := mustParse(t, "0 0 0 1 1 ? 2020")
	_, err := cs.Next(makeTime(2021, 1, 1, 0, 0, 0))
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestNext_Exhausted_ImpossibleDate(t *testing.T) {
	// February 30th never exists; the search must hit the year bound
	// instead of spinning.
	cs := mustParse(t, "0 0 0 30 2 ?")
	_, err := cs.Next(makeTime(2024, 1, 1, 0, 0, 0))
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

// Special day-of-month rules

func TestNext_LastDayOfMonth(t *testing.T) {
	assertNext(t, "0 15 10 L * ?",
		makeTime(2020, 2, 1, 0, 0, 0),
		makeTime(2020, 2, 29, 10, 15, 0)) // leap February
	assertNext(t, "0 15 10 L * ?",
		makeTime(2021, 2, 1, 0, 0, 0),
		makeTime(2021, 2, 28, 10, 15, 0))
}

func TestNext_LastWeekdayOfMonth(t *testing.T) {
	// September 30, 2020 is a Wednesday.
	assertNext(t, "0 0 12 LW * ?",
		makeTime(2020, 9, 1, 0, 0, 0),
		makeTime(2020, 9, 30, 12, 0, 0))
	// October 31, 2021 is a Sunday; the last weekday is Friday the 29th.
	assertNext(t, "0 0 12 LW * ?",
		makeTime(2021, 10, 1, 0, 0, 0),
		makeTime(2021, 10, 29, 12, 0, 0))
}

func TestNext_NearestWeekday(t *testing.T) {
	// August 15, 2020 is a Saturday; nearest weekday is Friday the 14th.
	assertNext(t, "0 0 12 15W * ?",
		makeTime(2020, 8, 1, 0, 0, 0),
		makeTime(2020, 8, 14, 12, 0, 0))
	// November 15, 2020 is a Sunday; nearest weekday is Monday the 16th.
	assertNext(t, "0 0 12 15W * ?",
		makeTime(2020, 11, 1, 0, 0, 0),
		makeTime(2020, 11, 16, 12, 0, 0))
}

func TestNext_NearestWeekday_MonthStartShiftsForward(t *testing.T) {
	// August 1, 2020 is a Saturday; 1W may not cross into July, so it
	// fires Monday the 3rd.
	assertNext(t, "0 0 12 1W * ?",
		makeTime(2020, 8, 1, 0, 0, 0),
		makeTime(2020, 8, 3, 12, 0, 0))
}

func TestNext_NearestWeekday_TargetBeyondShortMonth(t *testing.T) {
	// April has no 31st; 31W rolls to May 31, 2021, a Monday.
	assertNext(t, "0 0 12 31W * ?",
		makeTime(2021, 4, 1, 0, 0, 0),
		makeTime(2021, 5, 31, 12, 0, 0))
}

// Special day-of-week rules

func TestNext_LastFriday(t *testing.T) {
	// October 2020: the 31st is a Saturday, so the last Friday is the 30th.
	assertNext(t, "0 15 10 ? * 6L",
		makeTime(2020, 10, 1, 0, 0, 0),
		makeTime(2020, 10, 30, 10, 15, 0))
}

func TestNext_LastFriday_MonthEndingOnFriday(t *testing.T) {
	// July 31, 2020 is itself a Friday.
	assertNext(t, "0 15 10 ? * 6L",
		makeTime(2020, 7, 1, 0, 0, 0),
		makeTime(2020, 7, 31, 10, 15, 0))
}

func TestNext_ThirdFriday(t *testing.T) {
	// June 2020 Fridays: 5, 12, 19, 26. Third is the 19th.
	assertNext(t, "0 15 10 ? * 6#3",
		makeTime(2020, 6, 1, 0, 0, 0),
		makeTime(2020, 6, 19, 10, 15, 0))
}

func TestNext_ThirdFriday_RollsToNextMonth(t *testing.T) {
	// Starting after June's third Friday rolls into July (17th).
	assertNext(t, "0 15 10 ? * 6#3",
		makeTime(2020, 6, 20, 0, 0, 0),
		makeTime(2020, 7, 17, 10, 15, 0))
}

func TestNext_FifthSunday_SkipsMonthsWithoutOne(t *testing.T) {
	// March 2020 has five Sundays (1, 8, 15, 22, 29); April has only four.
	assertNext(t, "0 0 0 ? * 1#5",
		makeTime(2020, 3, 29, 1, 0, 0),
		makeTime(2020, 5, 31, 0, 0, 0))
}

func TestNext_BareL_IsSaturday(t *testing.T) {
	// April 18, 2020 is a Saturday.
	assertNext(t, "0 0 0 ? * L",
		makeTime(2020, 4, 12, 0, 0, 0),
		makeTime(2020, 4, 18, 0, 0, 0))
}

// Day-of-month vs day-of-week combination

func TestNext_DayPair_ORWhenBothRestricted(t *testing.T) {
	cs := mustParse(t, "0 0 0 15 * 2") // 15th of month OR Monday

	// From Jan 1, 2024 (a Monday): the next match is Monday Jan 8.
	got, err := cs.Next(makeTime(2024, 1, 1, 0, 0, 0))
	if err != nil {
		t.Fatalf("Next unexpected error: %v", err)
	}
	if !got.Equal(makeTime(2024, 1, 8, 0, 0, 0)) {
		t.Errorf("Next = %v, expected Monday Jan 8", got)
	}

	// From Jan 13: the 15th (a Monday in 2024, but also mid-week in other
	// months) comes before the following Monday's successor only via the
	// day-of-month branch.
	got, err = cs.Next(makeTime(2024, 1, 13, 0, 0, 0))
	if err != nil {
		t.Fatalf("Next unexpected error: %v", err)
	}
	if !got.Equal(makeTime(2024, 1, 15, 0, 0, 0)) {
		t.Errorf("Next = %v, expected Jan 15", got)
	}
}

func TestNext_DayPair_OnlyDayOfMonthRestricted(t *testing.T) {
	assertNext(t, "0 0 0 15 * ?",
		makeTime(2024, 1, 1, 0, 0, 0),
		makeTime(2024, 1, 15, 0, 0, 0))
}

func TestNext_DayPair_OnlyDayOfWeekRestricted(t *testing.T) {
	// Jan 1, 2024 is a Monday; strictly-after semantics push to Jan 8.
	assertNext(t, "0 0 0 ? * 2",
		makeTime(2024, 1, 1, 0, 0, 0),
		makeTime(2024, 1, 8, 0, 0, 0))
}

// TestPrev covers the backward mirror

func TestPrev_FirstOfMonth(t *testing.T) {
	assertPrev(t, "0 0 2 1 * ? *",
		makeTime(2020, 4, 16, 0, 0, 0),
		makeTime(2020, 4, 1, 2, 0, 0))
}

func TestPrev_NeverReturnsTheStartingInstant(t *testing.T) {
	cs := mustParse(t, "0 30 14 * * ?")
	before := makeTime(2024, 1, 2, 14, 30, 0) // exactly a fire time

	got, err := cs.Prev(before)
	if err != nil {
		t.Fatalf("Prev unexpected error: %v", err)
	}
	if !got.Before(before) {
		t.Errorf("Prev returned %v, not strictly before %v", got, before)
	}
	if !got.Equal(makeTime(2024, 1, 1, 14, 30, 0)) {
		t.Errorf("Prev = %v, expected previous day", got)
	}
}

func TestPrev_YearBoundaryBorrow(t *testing.T) {
	assertPrev(t, "0 0 0 * * ?",
		makeTime(2025, 1, 1, 0, 0, 0),
		makeTime(2024, 12, 31, 0, 0, 0))
}

func TestPrev_LastFriday_CorrectAcrossMonthLengths(t *testing.T) {
	// The two-occurrence spacing heuristic would misplace this; the true
	// backward walk lands on July 31, 2020, a Friday.
	assertPrev(t, "0 15 10 ? * 6L",
		makeTime(2020, 8, 5, 0, 0, 0),
		makeTime(2020, 7, 31, 10, 15, 0))
}

func TestPrev_LastDayOfMonth_LeapFebruary(t *testing.T) {
	assertPrev(t, "0 0 12 L * ?",
		makeTime(2020, 3, 1, 0, 0, 0),
		makeTime(2020, 2, 29, 12, 0, 0))
	assertPrev(t, "0 0 12 L * ?",
		makeTime(2021, 3, 1, 0, 0, 0),
		makeTime(2021, 2, 28, 12, 0, 0))
}

func TestPrev_NearestWeekday(t *testing.T) {
	// August 15, 2020 was a Saturday; the fire was Friday the 14th.
	assertPrev(t, "0 0 12 15W * ?",
		makeTime(2020, 9, 1, 0, 0, 0),
		makeTime(2020, 8, 14, 12, 0, 0))
}

func TestPrev_ThirdFriday(t *testing.T) {
	assertPrev(t, "0 15 10 ? * 6#3",
		makeTime(2020, 7, 1, 0, 0, 0),
		makeTime(2020, 6, 19, 10, 15, 0))
}

func TestPrev_Exhausted_BeforeYearRange(t *testing.T) {
	cs := mustParse(t, "0 0 0 1 1 ? 2020")
	_, err := cs.Prev(makeTime(2019, 6, 1, 0, 0, 0))
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestPrev_IsMirrorOfNext(t *testing.T) {
	exprs := []string{
		"0 */5 * * * ?",
		"0 15 10 ? * MON-FRI",
		"0 0 12 L * ?",
		"0 15 10 ? * 6#3",
	}
	start := makeTime(2023, 3, 10, 9, 30, 0)

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			cs := mustParse(t, expr)
			next, err := cs.Next(start)
			if err != nil {
				t.Fatalf("Next unexpected error: %v", err)
			}
			// Stepping back from just past the occurrence recovers it.
			back, err := cs.Prev(next.Add(time.Second))
			if err != nil {
				t.Fatalf("Prev unexpected error: %v", err)
			}
			if !back.Equal(next) {
				t.Errorf("Prev(Next+1s) = %v, expected %v", back, next)
			}
		})
	}
}

// Cross-cutting properties

func TestNext_ChainedSequenceStrictlyIncreasing(t *testing.T) {
	exprs := []string{
		"* * * * * ?",
		"0 */7 * * * ?",
		"0 15 10 ? * MON-FRI",
		"0 0 12 LW * ?",
		"0 15 10 ? * 6L",
		"0 15 10 ? * 6#3",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			cs := mustParse(t, expr)
			current := makeTime(2022, 12, 15, 8, 0, 0)
			for i := 0; i < 50; i++ {
				next, err := cs.Next(current)
				if err != nil {
					t.Fatalf("Next #%d unexpected error: %v", i, err)
				}
				if !next.After(current) {
					t.Fatalf("Next #%d = %v, not after %v", i, next, current)
				}
				if !cs.IsSatisfiedBy(next) {
					t.Fatalf("IsSatisfiedBy(Next #%d = %v) = false", i, next)
				}
				current = next
			}
		})
	}
}

func TestNext_PeriodicWithoutSpecials(t *testing.T) {
	// Plain step schedules repeat with a fixed period.
	cs := mustParse(t, "0 */15 * * * ?")
	current := makeTime(2024, 5, 1, 0, 0, 0)

	var prev time.Time
	for i := 0; i < 20; i++ {
		next, err := cs.Next(current)
		if err != nil {
			t.Fatalf("Next unexpected error: %v", err)
		}
		if i > 0 {
			if got := next.Sub(prev); got != 15*time.Minute {
				t.Fatalf("interval #%d = %v, expected 15m", i, got)
			}
		}
		prev = next
		current = next
	}
}

// TestIsSatisfiedBy covers the direct field test

func TestIsSatisfiedBy(t *testing.T) {
	tests := []struct {
		expr     string
		instant  time.Time
		expected bool
		desc     string
	}{
		{"0 0 2 1 * ? *", makeTime(2020, 5, 1, 2, 0, 0), true, "first of month at 2am"},
		{"0 0 2 1 * ? *", makeTime(2020, 5, 2, 2, 0, 0), false, "second of month"},
		{"0 15 10 ? * MON-FRI", makeTime(2020, 4, 20, 10, 15, 0), true, "a Monday"},
		{"0 15 10 ? * MON-FRI", makeTime(2020, 4, 18, 10, 15, 0), false, "a Saturday"},
		{"0 0 12 L * ?", makeTime(2020, 2, 29, 12, 0, 0), true, "leap day is last of month"},
		{"0 0 12 L * ?", makeTime(2020, 2, 28, 12, 0, 0), false, "feb 28 not last in leap year"},
		{"0 15 10 ? * 6#3", makeTime(2020, 6, 19, 10, 15, 0), true, "third friday"},
		{"0 15 10 ? * 6#3", makeTime(2020, 6, 26, 10, 15, 0), false, "fourth friday"},
		{"0 0 0 1 1 ? 2030", makeTime(2030, 1, 1, 0, 0, 0), true, "restricted year matches"},
		{"0 0 0 1 1 ? 2030", makeTime(2031, 1, 1, 0, 0, 0), false, "restricted year mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cs := mustParse(t, tt.expr)
			if got := cs.IsSatisfiedBy(tt.instant); got != tt.expected {
				t.Errorf("IsSatisfiedBy(%q, %v) = %v, expected %v", tt.expr, tt.instant, got, tt.expected)
			}
		})
	}
}

func TestIsSatisfiedBy_IgnoresSubSecond(t *testing.T) {
	cs := mustParse(t, "0 30 14 * * ?")
	instant := time.Date(2024, 1, 1, 14, 30, 0, 250000000, time.UTC)
	if !cs.IsSatisfiedBy(instant) {
		t.Error("expected sub-second component to be ignored")
	}
}

func TestNext_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	cs := mustParse(t, "0 0 2 1 * ?")
	after := time.Date(2020, 4, 16, 0, 0, 0, 0, loc)

	got, err := cs.Next(after)
	if err != nil {
		t.Fatalf("Next unexpected error: %v", err)
	}
	if got.Location() != loc {
		t.Errorf("Next location = %v, expected %v", got.Location(), loc)
	}
	if got.Hour() != 2 || got.Day() != 1 {
		t.Errorf("Next = %v, expected the 1st at 02:00 wall clock", got)
	}
}
