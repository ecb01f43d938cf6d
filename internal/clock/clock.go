// Package clock implements the weekly-cyclic time model: every instant is
// a minute offset from Monday 00:00, wrapping modulo one week.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerWeek is the size of the weekly cycle.
const MinutesPerWeek = 7 * 24 * 60

// Minute is a minute-of-week in [0, MinutesPerWeek).
type Minute int

// Weekday is a day of the recurring week, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "Unknown"
	}
	return weekdayNames[d]
}

// Short returns the 3-letter form, e.g. "Mon".
func (d Weekday) Short() string {
	return d.String()[:3]
}

// ParseWeekday matches a weekday name case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(name, s) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// ParseDayTime converts a weekday plus a "HH:MM" string into a Minute.
// The time string must be exactly two colon-separated numeric fields with
// hour in [0,24] and minute in [0,60].
func ParseDayTime(day Weekday, dayTime string) (Minute, error) {
	fields := strings.Split(dayTime, ":")
	if len(fields) != 2 {
		return 0, fmt.Errorf("time %q is not in HH:MM form", dayTime)
	}
	hour, err := strconv.Atoi(fields[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("invalid hour in %q", dayTime)
	}
	minute, err := strconv.Atoi(fields[1])
	if err != nil || minute < 0 || minute > 60 {
		return 0, fmt.Errorf("invalid minute in %q", dayTime)
	}
	return Minute(int(day)*24*60 + hour*60 + minute), nil
}

// Normalize maps any raw minute count into [0, MinutesPerWeek).
func Normalize(raw int) Minute {
	m := raw % MinutesPerWeek
	if m < 0 {
		m += MinutesPerWeek
	}
	return Minute(m)
}

// Until returns the number of minutes from one instant forward to another,
// crossing the week boundary when needed. The result is always >= 0.
func Until(from, to Minute) int {
	diff := int(to) - int(from)
	if diff < 0 {
		diff += MinutesPerWeek
	}
	return diff
}

// Add advances an instant by delta minutes (delta may be negative),
// wrapping into the week.
func Add(m Minute, delta int) Minute {
	return Normalize(int(m) + delta)
}

func split(m Minute) (day, hour, minute int) {
	v := int(Normalize(int(m)))
	day = v / (24 * 60)
	hour = (v % (24 * 60)) / 60
	minute = v % 60
	return
}

// Format renders a Minute as "Weekday HH:MM".
func Format(m Minute) string {
	day, hour, minute := split(m)
	return fmt.Sprintf("%s %02d:%02d", Weekday(day), hour, minute)
}

// FormatShort renders a Minute as "Wkd HH:MM".
func FormatShort(m Minute) string {
	day, hour, minute := split(m)
	return fmt.Sprintf("%s %02d:%02d", Weekday(day).Short(), hour, minute)
}

// FormatDuration renders a span of minutes as "Zm", "Yh Zm" or "Xd Yh Zm"
// depending on magnitude.
func FormatDuration(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	default:
		day := minutes / (24 * 60)
		rem := minutes % (24 * 60)
		return fmt.Sprintf("%dd %dh %dm", day, rem/60, rem%60)
	}
}

// FormatHourMinute renders a span of minutes as "Yh Zm", or just "Zm" when
// under an hour. Used for layover lines and path totals.
func FormatHourMinute(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
