package tripledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical form used everywhere a date is persisted or
// displayed: slash separators, zero-padded, no time component.
const DateFormat = "2006/01/02"

// readDateFormat is the permissive form accepted on input (allows
// single-digit month/day).
const readDateFormat = "2006/1/2"

// Date represents a calendar date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in the canonical YYYY/MM/DD form.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// ParseDate parses a Date from a string. It is lenient about separators and
// padding: "2026-1-9", "2026/01/09" and the spreadsheet's quoted "'2026/01/09"
// all normalize to the same date. The canonical output form is always
// YYYY/MM/DD.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	// Spreadsheet exports prefix text cells with an apostrophe.
	str = strings.ReplaceAll(str, "'", "")
	// Dash separators are accepted on input, never produced on output.
	str = strings.ReplaceAll(str, "-", "/")

	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// Some remote rows carry a full timestamp.
		on, err = time.Parse("2006/01/02T15:04:05.000Z0700", str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshal a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("invalid date in data file: %w", err)
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshal/unmarshaler type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
