package cron

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var monthNames = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

var weekdayNames = map[string]int{
	"SUN": 1, "MON": 2, "TUE": 3, "WED": 4, "THU": 5, "FRI": 6, "SAT": 7,
}

// parse parses a cron expression into a CronSchedule
func parse(expr string) (*CronSchedule, error) {
	// Split on whitespace
	fields := strings.Fields(expr)

	// Verify 6 or 7 fields (year is optional)
	if len(fields) != 6 && len(fields) != 7 {
		return nil, &ParseError{Err: fmt.Errorf("expected 6 or 7 fields, got %d", len(fields))}
	}

	cs := &CronSchedule{original: expr}

	var err error
	if cs.seconds, err = parseField(fields[0], 0, 59); err != nil {
		return nil, &ParseError{Field: "second", Token: fields[0], Err: err}
	}

	if cs.minutes, err = parseField(fields[1], 0, 59); err != nil {
		return nil, &ParseError{Field: "minute", Token: fields[1], Err: err}
	}

	if cs.hours, err = parseField(fields[2], 0, 23); err != nil {
		return nil, &ParseError{Field: "hour", Token: fields[2], Err: err}
	}

	if cs.dom, err = parseDayOfMonth(fields[3]); err != nil {
		return nil, &ParseError{Field: "day-of-month", Token: fields[3], Err: err}
	}

	if cs.months, err = parseNamedField(fields[4], 1, 12, monthNames); err != nil {
		return nil, &ParseError{Field: "month", Token: fields[4], Err: err}
	}

	if cs.dow, err = parseDayOfWeek(fields[5]); err != nil {
		return nil, &ParseError{Field: "day-of-week", Token: fields[5], Err: err}
	}

	if len(fields) == 7 {
		if cs.years, err = parseField(fields[6], minYear, maxYear); err != nil {
			return nil, &ParseError{Field: "year", Token: fields[6], Err: err}
		}
	} else {
		cs.years = expandRange(minYear, maxYear)
	}

	return cs, nil
}

// parseField parses a single cron field
func parseField(field string, min, max int) ([]int, error) {
	if field == "" {
		return nil, fmt.Errorf("empty field")
	}

	// Handle wildcard
	if field == "*" {
		return expandRange(min, max), nil
	}

	// Handle lists: 1,3,5 (items may themselves be ranges or steps)
	if strings.Contains(field, ",") {
		return parseList(field, min, max)
	}

	return parseItem(field, min, max)
}

// parseItem parses one comma-free sub-term: a step, a range or a single value.
func parseItem(field string, min, max int) ([]int, error) {
	if strings.Contains(field, "/") {
		return parseStep(field, min, max)
	}
	if strings.Contains(field, "-") {
		return parseRange(field, min, max)
	}
	return parseSingle(field, min, max)
}

// parseNamedField parses a field that also accepts named values
// (JAN-DEC, SUN-SAT), case-insensitively.
func parseNamedField(field string, min, max int, names map[string]int) ([]int, error) {
	normalized, err := replaceNames(field, names)
	if err != nil {
		return nil, err
	}
	return parseField(normalized, min, max)
}

// replaceNames substitutes known three-letter names with their numbers and
// rejects any remaining alphabetic token.
func replaceNames(field string, names map[string]int) (string, error) {
	upper := strings.ToUpper(field)
	for name, num := range names {
		upper = strings.ReplaceAll(upper, name, strconv.Itoa(num))
	}
	if i := strings.IndexFunc(upper, unicode.IsLetter); i >= 0 {
		return "", fmt.Errorf("unrecognized name %q", field)
	}
	return upper, nil
}

// expandRange returns all values from min to max inclusive
func expandRange(min, max int) []int {
	result := make([]int, max-min+1)
	for i := range result {
		result[i] = min + i
	}
	return result
}

// parseStep parses step expressions like */5, 3/5 or 1-10/2
func parseStep(field string, min, max int) ([]int, error) {
	parts := strings.Split(field, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid step syntax")
	}

	// Parse step value
	step, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid step value: %w", err)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be greater than 0")
	}

	// Parse range part: *, a range like 1-10, or a start value meaning
	// "from here to the field maximum"
	var rangeVals []int
	if parts[0] == "*" {
		rangeVals = expandRange(min, max)
	} else if strings.Contains(parts[0], "-") {
		rangeVals, err = parseRange(parts[0], min, max)
		if err != nil {
			return nil, err
		}
	} else {
		start, err := parseSingle(parts[0], min, max)
		if err != nil {
			return nil, err
		}
		rangeVals = expandRange(start[0], max)
	}

	result := []int{}
	for i := 0; i < len(rangeVals); i += step {
		result = append(result, rangeVals[i])
	}

	return result, nil
}

// parseList parses comma-separated values like 1,3,5
func parseList(field string, min, max int) ([]int, error) {
	parts := strings.Split(field, ",")
	result := []int{}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty value in list")
		}

		vals, err := parseItem(part, min, max)
		if err != nil {
			return nil, err
		}

		result = append(result, vals...)
	}

	// Sort and deduplicate
	sort.Ints(result)
	return deduplicate(result), nil
}

// parseRange parses a range like 1-5
func parseRange(field string, min, max int) ([]int, error) {
	parts := strings.Split(field, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range syntax")
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %w", err)
	}

	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %w", err)
	}

	if start < min || start > max {
		return nil, fmt.Errorf("range start %d out of bounds [%d, %d]", start, min, max)
	}

	if end < min || end > max {
		return nil, fmt.Errorf("range end %d out of bounds [%d, %d]", end, min, max)
	}

	if start > end {
		return nil, fmt.Errorf("invalid range: start %d > end %d", start, end)
	}

	return expandRange(start, end), nil
}

// parseSingle parses a single integer value
func parseSingle(field string, min, max int) ([]int, error) {
	val, err := strconv.Atoi(field)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}

	if val < min || val > max {
		return nil, fmt.Errorf("value %d out of bounds [%d, %d]", val, min, max)
	}

	return []int{val}, nil
}

// deduplicate removes duplicate values from a sorted slice
func deduplicate(vals []int) []int {
	if len(vals) == 0 {
		return vals
	}

	result := []int{vals[0]}
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1] {
			result = append(result, vals[i])
		}
	}
	return result
}

// parseDayOfMonth compiles the day-of-month field, which accepts ? L W
// beyond the plain grammar.
func parseDayOfMonth(field string) (domConstraint, error) {
	field = strings.ToUpper(field)
	switch field {
	case "":
		return domConstraint{}, fmt.Errorf("empty field")
	case "*":
		return domConstraint{kind: domAll}, nil
	case "?":
		return domConstraint{kind: domUnspecified}, nil
	case "L":
		return domConstraint{kind: domLast}, nil
	case "LW":
		return domConstraint{kind: domLastWeekday}, nil
	}

	if strings.HasSuffix(field, "W") {
		day, err := strconv.Atoi(strings.TrimSuffix(field, "W"))
		if err != nil {
			return domConstraint{}, fmt.Errorf("invalid nearest-weekday value: %w", err)
		}
		if day < 1 || day > 31 {
			return domConstraint{}, fmt.Errorf("nearest-weekday day %d out of bounds [1, 31]", day)
		}
		return domConstraint{kind: domNearestWeekday, day: day}, nil
	}

	if strings.ContainsAny(field, "?LW#") {
		return domConstraint{}, fmt.Errorf("special character must stand alone")
	}

	vals, err := parseField(field, 1, 31)
	if err != nil {
		return domConstraint{}, err
	}
	return domConstraint{kind: domValues, values: vals}, nil
}

// parseDayOfWeek compiles the day-of-week field, which accepts ? L #
// beyond the plain grammar. Weekdays are numbered 1=SUN through 7=SAT.
func parseDayOfWeek(field string) (dowConstraint, error) {
	field = strings.ToUpper(field)
	switch field {
	case "":
		return dowConstraint{}, fmt.Errorf("empty field")
	case "*":
		return dowConstraint{kind: dowAll}, nil
	case "?":
		return dowConstraint{kind: dowUnspecified}, nil
	case "L":
		// Bare L means the last day of the week: Saturday.
		return dowConstraint{kind: dowValues, values: []int{7}}, nil
	}

	normalized, err := replaceNames(field, weekdayNames)
	if err != nil {
		// A trailing L after a number or name is legal (e.g. 6L, FRIL);
		// retry with it split off.
		if !strings.HasSuffix(field, "L") || len(field) < 2 {
			return dowConstraint{}, err
		}
		normalized, err = replaceNames(field[:len(field)-1], weekdayNames)
		if err != nil {
			return dowConstraint{}, err
		}
		normalized += "L"
	}

	if strings.HasSuffix(normalized, "L") {
		weekday, err := strconv.Atoi(strings.TrimSuffix(normalized, "L"))
		if err != nil {
			return dowConstraint{}, fmt.Errorf("invalid last-weekday value: %w", err)
		}
		if weekday < 1 || weekday > 7 {
			return dowConstraint{}, fmt.Errorf("weekday %d out of bounds [1, 7]", weekday)
		}
		return dowConstraint{kind: dowLast, weekday: weekday}, nil
	}

	if strings.Contains(normalized, "#") {
		parts := strings.Split(normalized, "#")
		if len(parts) != 2 {
			return dowConstraint{}, fmt.Errorf("invalid nth-weekday syntax")
		}
		weekday, err := strconv.Atoi(parts[0])
		if err != nil {
			return dowConstraint{}, fmt.Errorf("invalid nth-weekday value: %w", err)
		}
		if weekday < 1 || weekday > 7 {
			return dowConstraint{}, fmt.Errorf("weekday %d out of bounds [1, 7]", weekday)
		}
		nth, err := strconv.Atoi(parts[1])
		if err != nil {
			return dowConstraint{}, fmt.Errorf("invalid nth-weekday occurrence: %w", err)
		}
		if nth < 1 || nth > 5 {
			return dowConstraint{}, fmt.Errorf("occurrence %d out of bounds [1, 5]", nth)
		}
		return dowConstraint{kind: dowNth, weekday: weekday, nth: nth}, nil
	}

	if strings.ContainsAny(normalized, "?W") {
		return dowConstraint{}, fmt.Errorf("special character must stand alone")
	}

	vals, err := parseField(normalized, 1, 7)
	if err != nil {
		return dowConstraint{}, err
	}
	return dowConstraint{kind: dowValues, values: vals}, nil
}
