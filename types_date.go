package wealthtrack

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // permissive read format (allows single-digit month/day)

// DateFormat is the canonical ISO-8601 representation used when writing dates.
const DateFormat = "2006-01-02"

const day = 24 * time.Hour

// Date represents a calendar date with day-level granularity.
// All book entries are dated at day granularity; only price update
// timestamps keep a full time.Time.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	d := Date{year, month, dayOfMonth}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns the canonical representation of that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns the date formatted according to the layout, see [time.Format].
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return NewDate(d.y, d.m, d.d+days) }

// DaysUntil returns the number of whole days from d to x. Negative if x is before d.
func (d Date) DaysUntil(x Date) int { return int(x.time().Sub(d.time()) / day) }

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// ParseDate parses a Date from a string. It is lenient: it accepts ISO dates
// like "2025-7-1" as well as relative forms like "-3d", "+2w" or "0d" (today).
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	if str == "0d" {
		return Today(), nil
	}

	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// unreachable given the regex
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return NewDate(today.Year(), today.Month()+time.Month(num), today.Day()), nil
		case "y":
			return NewDate(today.Year()+num, today.Month(), today.Day()), nil
		}
	}

	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests and literals.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON decodes a date from a JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in book file, want format %q: %w", str, DateFormat, err)
	}
	*d = NewDate(on.Date())
	return nil
}

// MarshalJSON encodes the date as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
