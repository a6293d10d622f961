package ir

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Temporal literal payloads. Each is a comparable value type so constants
// can compare and hash by value; none carries a time.Location pointer.

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Time is a wall-clock time of day without zone.
type Time struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// Timestamp is a date and time without zone.
type Timestamp struct {
	Date Date
	Time Time
}

// TimeWithZone is a time of day with a fixed UTC offset in seconds.
type TimeWithZone struct {
	Time   Time
	Offset int
}

// TimestampWithZone is a timestamp with a fixed UTC offset in seconds.
type TimestampWithZone struct {
	Timestamp Timestamp
	Offset    int
}

// maxOffset is the widest offset accepted, matching the usual +-18:00 bound.
const maxOffset = 18 * 60 * 60

// DateOf extracts the calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// TimeOf extracts the wall-clock time of t.
func TimeOf(t time.Time) Time {
	return Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// TimestampOf extracts date and time of t, dropping its zone.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{Date: DateOf(t), Time: TimeOf(t)}
}

// TimeWithZoneOf extracts the time of t together with its offset.
func TimeWithZoneOf(t time.Time) TimeWithZone {
	_, off := t.Zone()
	return TimeWithZone{Time: TimeOf(t), Offset: off}
}

// TimestampWithZoneOf extracts the timestamp of t together with its offset.
func TimestampWithZoneOf(t time.Time) TimestampWithZone {
	_, off := t.Zone()
	return TimestampWithZone{Timestamp: TimestampOf(t), Offset: off}
}

// Validate reports whether d names an existing calendar day.
func (d Date) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("month %d out of range", int(d.Month))
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || t.Month() != d.Month {
		return fmt.Errorf("day %d out of range for %s %d", d.Day, d.Month, d.Year)
	}
	if d.Year < 0 || d.Year > 9999 {
		return fmt.Errorf("year %d out of range", d.Year)
	}
	return nil
}

// Validate reports whether t is a valid time of day.
func (t Time) Validate() error {
	switch {
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("hour %d out of range", t.Hour)
	case t.Minute < 0 || t.Minute > 59:
		return fmt.Errorf("minute %d out of range", t.Minute)
	case t.Second < 0 || t.Second > 59:
		return fmt.Errorf("second %d out of range", t.Second)
	case t.Nanosecond < 0 || t.Nanosecond > 999999999:
		return fmt.Errorf("nanosecond %d out of range", t.Nanosecond)
	}
	return nil
}

// Validate checks both halves of the timestamp.
func (ts Timestamp) Validate() error {
	if err := ts.Date.Validate(); err != nil {
		return err
	}
	return ts.Time.Validate()
}

// Validate checks the time and the offset.
func (tz TimeWithZone) Validate() error {
	if err := tz.Time.Validate(); err != nil {
		return err
	}
	return validateOffset(tz.Offset)
}

// Validate checks the timestamp and the offset.
func (tz TimestampWithZone) Validate() error {
	if err := tz.Timestamp.Validate(); err != nil {
		return err
	}
	return validateOffset(tz.Offset)
}

func validateOffset(off int) error {
	if off%60 != 0 {
		return fmt.Errorf("offset %ds is not a whole number of minutes", off)
	}
	if off < -maxOffset || off > maxOffset {
		return fmt.Errorf("offset %ds out of range", off)
	}
	return nil
}

// String renders YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// String renders HH:MM:SS with a fractional part only when non-zero.
func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%09d", t.Nanosecond), "0")
		s += "." + frac
	}
	return s
}

// String renders the date and time separated by a space.
func (ts Timestamp) String() string {
	return ts.Date.String() + " " + ts.Time.String()
}

func (tz TimeWithZone) String() string {
	return tz.Time.String() + formatOffset(tz.Offset)
}

func (tz TimestampWithZone) String() string {
	return tz.Timestamp.String() + formatOffset(tz.Offset)
}

// formatOffset always renders a signed +HH:MM so that zoned and unzoned
// literals stay distinguishable after printing.
func formatOffset(off int) string {
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%c%02d:%02d", sign, off/3600, (off%3600)/60)
}

const (
	layoutDate        = "2006-01-02"
	layoutTime        = "15:04:05"
	layoutTimeZone    = "15:04:05Z07:00"
	layoutStamp       = "2006-01-02 15:04:05"
	layoutStampT      = "2006-01-02T15:04:05"
	layoutStampZone   = "2006-01-02 15:04:05Z07:00"
	layoutStampZoneT  = "2006-01-02T15:04:05Z07:00"
	layoutTimeNoSecs  = "15:04"
	layoutTimeNoSecsZ = "15:04Z07:00"
)

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layoutDate, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %s: %w", strconv.Quote(s), err)
	}
	return DateOf(t), nil
}

// ParseTime parses HH:MM[:SS[.fraction]] without zone.
func ParseTime(s string) (Time, error) {
	t, err := parseFirst(s, layoutTime, layoutTimeNoSecs)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %s: %w", strconv.Quote(s), err)
	}
	return TimeOf(t), nil
}

// ParseTimestamp parses a date and time separated by a space or 'T'.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := parseFirst(s, layoutStamp, layoutStampT)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %s: %w", strconv.Quote(s), err)
	}
	return TimestampOf(t), nil
}

// ParseTimeWithZone parses a time followed by Z or +-HH:MM.
func ParseTimeWithZone(s string) (TimeWithZone, error) {
	t, err := parseFirst(s, layoutTimeZone, layoutTimeNoSecsZ)
	if err != nil {
		return TimeWithZone{}, fmt.Errorf("invalid time with time zone %s: %w", strconv.Quote(s), err)
	}
	return TimeWithZoneOf(t), nil
}

// ParseTimestampWithZone parses a timestamp followed by Z or +-HH:MM.
func ParseTimestampWithZone(s string) (TimestampWithZone, error) {
	t, err := parseFirst(s, layoutStampZone, layoutStampZoneT)
	if err != nil {
		return TimestampWithZone{}, fmt.Errorf("invalid timestamp with time zone %s: %w", strconv.Quote(s), err)
	}
	return TimestampWithZoneOf(t), nil
}

// HasZone reports whether a time or timestamp literal ends with an offset.
// The printer uses the same keyword for zoned and unzoned values, so the
// parser tells them apart by this suffix.
func HasZone(s string) bool {
	if strings.HasSuffix(s, "Z") {
		return true
	}
	// the date part contains '-' too, so only look after the time separator
	if i := strings.LastIndexAny(s, " T"); i >= 0 {
		s = s[i+1:]
	}
	return strings.ContainsAny(s, "+-")
}

func parseFirst(s string, layouts ...string) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
