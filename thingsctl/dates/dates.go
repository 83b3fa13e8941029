// Package dates parses natural language date and time expressions
// like "tomorrow", "next friday", "in 3 days", or "dec 15 at 3pm".
package dates

import (
	"strconv"
	"strings"
	"time"
)

// Result is a parsed date expression.
type Result struct {
	Date     time.Time
	Time     time.Duration // offset from midnight, valid when HasTime
	HasTime  bool
	Deadline bool // the expression used a "by" prefix
}

// ISODate formats the date part as YYYY-MM-DD.
func (r Result) ISODate() string {
	return r.Date.Format("2006-01-02")
}

// DateTime combines the date with the time of day, midnight when no
// time was given.
func (r Result) DateTime() time.Time {
	return r.Date.Add(r.Time)
}

// Parse parses a natural date expression relative to the current day.
func Parse(input string) (Result, bool) {
	return ParseAt(input, time.Now())
}

// ParseAt parses a natural date expression relative to an explicit
// anchor day. The anchor's time of day is ignored.
func ParseAt(input string, anchor time.Time) (Result, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := midnight(anchor)

	input, deadline := strings.CutPrefix(input, "by ")

	datePart, tod, hasTime := extractTime(input)

	date, ok := parseDate(datePart, today)
	if !ok {
		return Result{}, false
	}

	return Result{Date: date, Time: tod, HasTime: hasTime, Deadline: deadline}, true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseDate(input string, today time.Time) (time.Time, bool) {
	input = strings.TrimSpace(input)

	switch input {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	case "next week":
		return nextWeekday(today, time.Monday, false), true
	}

	if d, ok := parseRelativeOffset(input, today); ok {
		return d, true
	}
	if d, ok := parseWeekday(input, today); ok {
		return d, true
	}
	if d, ok := parseMonthDay(input, today); ok {
		return d, true
	}
	if d, err := time.ParseInLocation("2006-01-02", input, today.Location()); err == nil {
		return d, true
	}
	if d, ok := parseSlashDate(input, today); ok {
		return d, true
	}

	return time.Time{}, false
}

// parseRelativeOffset handles "in N days", "in N weeks", "in N months".
func parseRelativeOffset(input string, today time.Time) (time.Time, bool) {
	parts := strings.Fields(input)
	if len(parts) < 3 || parts[0] != "in" {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	switch strings.TrimSuffix(parts[2], "s") {
	case "day":
		return today.AddDate(0, 0, n), true
	case "week":
		return today.AddDate(0, 0, n*7), true
	case "month":
		return today.AddDate(0, n, 0), true
	}
	return time.Time{}, false
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

func parseWeekday(input string, today time.Time) (time.Time, bool) {
	name, isNext := strings.CutPrefix(input, "next ")

	target, ok := weekdays[name]
	if !ok {
		return time.Time{}, false
	}
	return nextWeekday(today, target, isNext), true
}

// nextWeekday returns the next occurrence of target strictly after
// today; with skip set, a match within the coming week is pushed out
// another week ("next monday" on a Sunday means eight days out).
func nextWeekday(today time.Time, target time.Weekday, skip bool) time.Time {
	days := (int(target) - int(today.Weekday()) + 7) % 7
	if days == 0 || skip && days <= 7 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// parseMonthDay handles "dec 15" and "december 15". A date already in
// the past rolls over to next year.
func parseMonthDay(input string, today time.Time) (time.Time, bool) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return time.Time{}, false
	}

	month, ok := months[parts[0]]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
	if date.Month() != month {
		return time.Time{}, false
	}
	if date.Before(today) {
		date = date.AddDate(1, 0, 0)
	}
	return date, true
}

// parseSlashDate handles MM/DD and MM/DD/YYYY.
func parseSlashDate(input string, today time.Time) (time.Time, bool) {
	parts := strings.Split(input, "/")

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	switch len(parts) {
	case 2:
		day, err := strconv.Atoi(parts[1])
		if err != nil {
			return time.Time{}, false
		}
		date := time.Date(today.Year(), time.Month(month), day, 0, 0, 0, 0, today.Location())
		if int(date.Month()) != month {
			return time.Time{}, false
		}
		if date.Before(today) {
			date = date.AddDate(1, 0, 0)
		}
		return date, true
	case 3:
		day, err := strconv.Atoi(parts[1])
		if err != nil {
			return time.Time{}, false
		}
		year, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, false
		}
		if year < 100 {
			year += 2000
		}
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())
		if int(date.Month()) != month {
			return time.Time{}, false
		}
		return date, true
	}
	return time.Time{}, false
}

// extractTime splits a trailing time expression off a date phrase,
// tolerating an "at" or "@" separator: "tomorrow at 3pm".
func extractTime(input string) (string, time.Duration, bool) {
	input = strings.ReplaceAll(input, " at ", " ")
	input = strings.ReplaceAll(input, " @ ", " ")

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return input, 0, false
	}

	if tod, ok := parseClock(parts[len(parts)-1]); ok {
		return strings.Join(parts[:len(parts)-1], " "), tod, true
	}
	return input, 0, false
}

func parseClock(input string) (time.Duration, bool) {
	switch input {
	case "morning":
		return 9 * time.Hour, true
	case "noon", "midday":
		return 12 * time.Hour, true
	case "afternoon":
		return 14 * time.Hour, true
	case "evening":
		return 18 * time.Hour, true
	case "night":
		return 21 * time.Hour, true
	}

	// 24-hour format
	if h, m, ok := splitClock(input); ok {
		if h < 24 && m < 60 {
			return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, true
		}
		return 0, false
	}

	// 12-hour format with am/pm suffix
	var pm bool
	var rest string
	switch {
	case strings.HasSuffix(input, "pm"):
		pm, rest = true, strings.TrimSuffix(input, "pm")
	case strings.HasSuffix(input, "am"):
		pm, rest = false, strings.TrimSuffix(input, "am")
	default:
		return 0, false
	}

	var hour, minute int
	if h, m, ok := splitClock(rest); ok {
		hour, minute = h, m
	} else {
		h, err := strconv.Atoi(rest)
		if err != nil {
			return 0, false
		}
		hour = h
	}
	if hour > 12 || minute > 59 {
		return 0, false
	}
	if pm && hour < 12 {
		hour += 12
	} else if !pm && hour == 12 {
		hour = 0
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, true
}

func splitClock(input string) (int, int, bool) {
	h, m, ok := strings.Cut(input, ":")
	if !ok {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}
