// Public domain.

// Package epoch represents instants as integer microseconds from
// 2000-01-01T00:00:00 UTC.
//
// Three numeric day representations convert by constant offset:
//
//	MJD2000  days since 2000-01-01 0h
//	MJD      days since 1858-11-17 0h  (MJD2000 + 51544)
//	JD       Julian day number         (MJD2000 + 2451544.5)
//
// Leap seconds are not counted.  Calendar strings and time.Time values are
// taken as UTC on a day of exactly 86400 seconds.
package epoch

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Epoch is an instant, microseconds from MJD2000 0.  The zero value is
// 2000-01-01T00:00:00.  Epochs compare with the usual operators.
type Epoch int64

// JulianType selects a numeric day representation.
type JulianType int

const (
	MJD2000 JulianType = iota
	MJD
	JD
)

// Day offsets of MJD2000 0 in the other representations.
const (
	MJDOffset = 51544.
	JDOffset  = 2451544.5
)

const usPerDay = 86400e6

// unix time of MJD2000 0
const unix2000 = 946684800

var (
	ErrTypeMismatch = errors.New("epoch: value is not an instant")
	ErrFormat       = errors.New("epoch: invalid format")
)

func (jt JulianType) String() string {
	switch jt {
	case MJD2000:
		return "MJD2000"
	case MJD:
		return "MJD"
	case JD:
		return "JD"
	}
	return fmt.Sprintf("JulianType(%d)", int(jt))
}

func (jt JulianType) offset() (float64, bool) {
	switch jt {
	case MJD2000:
		return 0, true
	case MJD:
		return MJDOffset, true
	case JD:
		return JDOffset, true
	}
	return 0, false
}

// New constructs an Epoch from a day count in the given representation.
func New(days float64, jt JulianType) (Epoch, error) {
	off, ok := jt.offset()
	if !ok {
		return 0, fmt.Errorf("%w: unknown julian type %d", ErrFormat, int(jt))
	}
	us := math.Round((days - off) * usPerDay)
	if math.IsNaN(us) || math.Abs(us) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %g %s not representable", ErrFormat, days, jt)
	}
	return Epoch(us), nil
}

// FromTime converts a time.Time, truncating to the microsecond.
func FromTime(t time.Time) Epoch {
	return Epoch((t.Unix()-unix2000)*1e6 + int64(t.Nanosecond()/1e3))
}

// FromCalendar constructs an Epoch from UTC calendar fields.  Out of range
// fields normalize as with time.Date.
func FromCalendar(year, month, day, hour, min, sec, us int) Epoch {
	return FromTime(time.Date(year, time.Month(month), day,
		hour, min, sec, us*1e3, time.UTC))
}

// Now returns the current instant.
func Now() Epoch { return FromTime(time.Now()) }

var layouts = []string{
	"2006-01",
	"2006-01-02",
	"2006-01-02T15",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05", // fractional seconds parse with this too
}

// Parse parses an ISO style calendar string in UTC.  Recognized precisions
// are year-month, date, and date with hour, hour:minute or
// hour:minute:second, the last optionally with fractional seconds.  The
// date and time may be separated by "T" or a single space.  A trailing "Z"
// is allowed.
func Parse(s string) (Epoch, error) {
	v := strings.TrimSuffix(strings.TrimSpace(s), "Z")
	v = strings.Replace(v, " ", "T", 1)
	for _, l := range layouts {
		if t, err := time.Parse(l, v); err == nil {
			return FromTime(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, s)
}

// From converts any of the supported instant representations to an Epoch:
// an Epoch, a float64 or integer taken as MJD2000 days, a calendar string
// as accepted by Parse, or a time.Time.  Anything else, a time.Duration in
// particular, returns ErrTypeMismatch.
func From(v any) (Epoch, error) {
	switch x := v.(type) {
	case Epoch:
		return x, nil
	case *Epoch:
		if x != nil {
			return *x, nil
		}
	case float64:
		return New(x, MJD2000)
	case float32:
		return New(float64(x), MJD2000)
	case int:
		return New(float64(x), MJD2000)
	case int64:
		return New(float64(x), MJD2000)
	case string:
		return Parse(x)
	case time.Time:
		return FromTime(x), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrTypeMismatch, v)
}

// MJD2000 returns days since 2000-01-01 0h.
func (e Epoch) MJD2000() float64 { return float64(e) / usPerDay }

// MJD returns the modified Julian date.
func (e Epoch) MJD() float64 { return e.MJD2000() + MJDOffset }

// JD returns the Julian day.
func (e Epoch) JD() float64 { return e.MJD2000() + JDOffset }

// Julian returns the day count in the given representation, NaN for an
// unknown JulianType.
func (e Epoch) Julian(jt JulianType) float64 {
	off, ok := jt.offset()
	if !ok {
		return math.NaN()
	}
	return e.MJD2000() + off
}

// Time returns the instant as a UTC time.Time.
func (e Epoch) Time() time.Time {
	sec, us := int64(e)/1e6, int64(e)%1e6
	if us < 0 {
		sec--
		us += 1e6
	}
	return time.Unix(unix2000+sec, us*1e3).UTC()
}

// Calendar returns year, month and fractional day.  Dates before the
// Gregorian reform of 1582 are in the Julian calendar.
func (e Epoch) Calendar() (year, month int, day float64) {
	return julian.JDToCalendar(e.JD())
}

// String formats the epoch as ISO 8601 with microseconds.
func (e Epoch) String() string {
	return e.Time().Format("2006-01-02T15:04:05.000000")
}

// MarshalText implements encoding.TextMarshaler.
func (e Epoch) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler with Parse.
func (e *Epoch) UnmarshalText(b []byte) (err error) {
	*e, err = Parse(string(b))
	return
}

// Add returns e plus a number of days, rounded to the microsecond.
func (e Epoch) Add(days float64) Epoch {
	return e + Epoch(math.Round(days*usPerDay))
}

// AddDuration returns e plus d, truncated to the microsecond.
func (e Epoch) AddDuration(d time.Duration) Epoch {
	return e + Epoch(d/time.Microsecond)
}

// Sub returns e - o in days.
func (e Epoch) Sub(o Epoch) float64 { return float64(e-o) / usPerDay }

func (e Epoch) Before(o Epoch) bool { return e < o }
func (e Epoch) After(o Epoch) bool  { return e > o }
func (e Epoch) Equal(o Epoch) bool  { return e == o }

// Compare returns -1, 0 or +1 as e is before, equal to or after o.
func (e Epoch) Compare(o Epoch) int {
	switch {
	case e < o:
		return -1
	case e > o:
		return 1
	}
	return 0
}
