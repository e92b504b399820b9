package cron

import (
	"fmt"
	"strconv"
	"strings"
)

// format re-serializes the compiled schedule into minimal , - / notation.
// Parsing the result yields a schedule Equal to this one.
func (cs *CronSchedule) format() string {
	fields := []string{
		formatValues(cs.seconds, 0, 59),
		formatValues(cs.minutes, 0, 59),
		formatValues(cs.hours, 0, 23),
		cs.dom.format(),
		formatValues(cs.months, 1, 12),
		cs.dow.format(),
	}
	if len(cs.years) != maxYear-minYear+1 {
		fields = append(fields, formatValues(cs.years, minYear, maxYear))
	}
	return strings.Join(fields, " ")
}

func (c domConstraint) format() string {
	switch c.kind {
	case domUnspecified:
		return "?"
	case domLast:
		return "L"
	case domLastWeekday:
		return "LW"
	case domNearestWeekday:
		return fmt.Sprintf("%dW", c.day)
	case domValues:
		// A full-range value set is still a restricted field for the
		// day-pair OR rule, so it must not collapse to *.
		if len(c.values) == 31 {
			return "1-31"
		}
		return formatValues(c.values, 1, 31)
	}
	return "*"
}

func (c dowConstraint) format() string {
	switch c.kind {
	case dowUnspecified:
		return "?"
	case dowLast:
		return fmt.Sprintf("%dL", c.weekday)
	case dowNth:
		return fmt.Sprintf("%d#%d", c.weekday, c.nth)
	case dowValues:
		if len(c.values) == 7 {
			return "1-7"
		}
		return formatValues(c.values, 1, 7)
	}
	return "*"
}

// formatValues renders a sorted value set as the shortest of *, a single
// value, an arithmetic step, or comma-joined runs.
func formatValues(vals []int, min, max int) string {
	if len(vals) == max-min+1 {
		return "*"
	}
	if len(vals) == 1 {
		return strconv.Itoa(vals[0])
	}

	// An evenly spaced set with a step above one collapses to a/b form.
	step := vals[1] - vals[0]
	uniform := step > 1
	for i := 2; i < len(vals) && uniform; i++ {
		if vals[i]-vals[i-1] != step {
			uniform = false
		}
	}
	if uniform {
		first, last := vals[0], vals[len(vals)-1]
		if last+step > max {
			return fmt.Sprintf("%d/%d", first, step)
		}
		return fmt.Sprintf("%d-%d/%d", first, last, step)
	}

	// Otherwise collapse consecutive values into ranges.
	var parts []string
	for i := 0; i < len(vals); {
		j := i
		for j+1 < len(vals) && vals[j+1] == vals[j]+1 {
			j++
		}
		switch j - i {
		case 0:
			parts = append(parts, strconv.Itoa(vals[i]))
		case 1:
			parts = append(parts, strconv.Itoa(vals[i]), strconv.Itoa(vals[j]))
		default:
			parts = append(parts, fmt.Sprintf("%d-%d", vals[i], vals[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
