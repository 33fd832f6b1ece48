// Public domain.

package epoch_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"

	"github.com/soniakeys/kep/epoch"
)

func mustNew(t *testing.T, d float64, jt epoch.JulianType) epoch.Epoch {
	e, err := epoch.New(d, jt)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEquivalence(t *testing.T) {
	a := mustNew(t, 0, epoch.MJD2000)
	b := mustNew(t, epoch.MJDOffset, epoch.MJD)
	c := mustNew(t, epoch.JDOffset, epoch.JD)
	d, err := epoch.Parse("2000-01-01T00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	e := epoch.FromTime(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	f := epoch.FromCalendar(2000, 1, 1, 0, 0, 0, 0)
	for i, x := range []epoch.Epoch{a, b, c, d, e, f} {
		if x != 0 {
			t.Errorf("case %d: %v (%d µs), want MJD2000 0", i, x, int64(x))
		}
	}
	var zero epoch.Epoch
	if zero.MJD() != epoch.MJDOffset || zero.JD() != epoch.JDOffset {
		t.Error("zero value", zero.MJD(), zero.JD())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, d := range []float64{-36525.25, -1, 0, .5, 1, 8765.4321, 36525} {
		for _, jt := range []epoch.JulianType{epoch.MJD2000, epoch.MJD, epoch.JD} {
			e := mustNew(t, d+mustNew(t, 0, epoch.MJD2000).Julian(jt), jt)
			if got := e.MJD2000(); math.Abs(got-d) > 1e-9 {
				t.Errorf("%s %g: MJD2000 %.12f", jt, d, got)
			}
			if e2 := epoch.FromTime(e.Time()); e2 != e {
				t.Errorf("%s %g: time round trip %d, want %d", jt, d, e2, e)
			}
			if e3, err := epoch.Parse(e.String()); err != nil || e3 != e {
				t.Errorf("%s %g: string round trip %v %v, want %v", jt, d, e3, err, e)
			}
		}
	}
}

func TestArithmetic(t *testing.T) {
	e0 := mustNew(t, 0, epoch.MJD2000)
	e1 := mustNew(t, 1, epoch.MJD2000)
	if a, b := e0.AddDuration(24*time.Hour), e0.Add(1); a != b || a != e1 {
		t.Fatal(a, b, e1)
	}
	if d := e1.Sub(e0); d != 1 {
		t.Error("Sub", d)
	}
	if d := e0.Add(-.25).Sub(e0); d != -.25 {
		t.Error("Sub", d)
	}
	for _, c := range []struct {
		a, b epoch.Epoch
		cmp  int
	}{
		{e0, e1, -1},
		{e1, e0, 1},
		{e1, e0.Add(1), 0},
		{e0.AddDuration(-time.Microsecond), e0, -1},
	} {
		if got := c.a.Compare(c.b); got != c.cmp {
			t.Errorf("Compare(%v, %v) = %d", c.a, c.b, got)
		}
		d := c.a.Sub(c.b)
		if c.a.Before(c.b) != (d < 0) || c.a.After(c.b) != (d > 0) ||
			c.a.Equal(c.b) != (d == 0) {
			t.Errorf("ordering of %v, %v disagrees with difference %g", c.a, c.b, d)
		}
	}
}

func TestParse(t *testing.T) {
	for _, c := range []struct {
		s    string
		want epoch.Epoch
	}{
		{"2000-01", 0},
		{"2000-01-02", epoch.FromCalendar(2000, 1, 2, 0, 0, 0, 0)},
		{"2023-10-17T13", epoch.FromCalendar(2023, 10, 17, 13, 0, 0, 0)},
		{"2023-10-17T13:54", epoch.FromCalendar(2023, 10, 17, 13, 54, 0, 0)},
		{"2023-10-17 13:54:12", epoch.FromCalendar(2023, 10, 17, 13, 54, 12, 0)},
		{"2023-10-17T13:54:12.25", epoch.FromCalendar(2023, 10, 17, 13, 54, 12, 250000)},
		{"2023-10-17T13:54:12.000001Z", epoch.FromCalendar(2023, 10, 17, 13, 54, 12, 1)},
		{"1999-12-31T23:59:59.999999", -1},
	} {
		got, err := epoch.Parse(c.s)
		if err != nil {
			t.Errorf("%q: %v", c.s, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q = %v, want %v", c.s, got, c.want)
		}
	}
	for _, s := range []string{"", "2000", "2000-13-01", "2000-01-01T25", "yesterday", "2000/01/01"} {
		if _, err := epoch.Parse(s); !errors.Is(err, epoch.ErrFormat) {
			t.Errorf("%q: got %v, want ErrFormat", s, err)
		}
	}
}

func TestFrom(t *testing.T) {
	e := epoch.FromCalendar(2020, 2, 29, 12, 0, 0, 0)
	for _, v := range []any{
		e,
		&e,
		e.MJD2000(),
		e.String(),
		e.Time(),
		e.Time().In(time.FixedZone("x", 3600)),
	} {
		got, err := epoch.From(v)
		if err != nil {
			t.Errorf("%T: %v", v, err)
		} else if got != e {
			t.Errorf("%T: %v, want %v", v, got, e)
		}
	}
	if got, err := epoch.From(3); err != nil || got != mustNew(t, 3, epoch.MJD2000) {
		t.Error("int", got, err)
	}
	for _, v := range []any{time.Hour, nil, []float64{1}, struct{}{}, (*epoch.Epoch)(nil)} {
		if _, err := epoch.From(v); !errors.Is(err, epoch.ErrTypeMismatch) {
			t.Errorf("%T: got %v, want ErrTypeMismatch", v, err)
		}
	}
	if _, err := epoch.From(math.NaN()); !errors.Is(err, epoch.ErrFormat) {
		t.Error("NaN accepted", err)
	}
	if _, err := epoch.New(0, epoch.JulianType(7)); !errors.Is(err, epoch.ErrFormat) {
		t.Error("unknown julian type accepted", err)
	}
	for _, jt := range []epoch.JulianType{-1, 3, 7} {
		if d := mustNew(t, 5, epoch.MJD2000).Julian(jt); !math.IsNaN(d) {
			t.Errorf("Julian(%v) = %v, want NaN", jt, d)
		}
	}
}

func TestMeeus(t *testing.T) {
	// noon on 1 Jan 2000 is J2000.0
	if jd := epoch.FromCalendar(2000, 1, 1, 12, 0, 0, 0).JD(); jd != base.J2000 {
		t.Errorf("JD = %.6f, want %.6f", jd, base.J2000)
	}
	for _, e := range []epoch.Epoch{
		epoch.FromCalendar(1957, 10, 4, 19, 28, 34, 0),
		epoch.FromCalendar(2000, 1, 1, 0, 0, 0, 0),
		epoch.FromCalendar(2023, 10, 17, 13, 54, 12, 500000),
		epoch.FromCalendar(2099, 12, 31, 23, 59, 59, 0),
	} {
		want := julian.TimeToJD(e.Time())
		if math.Abs(e.JD()-want) > 1e-8 {
			t.Errorf("%v: JD %.9f, meeus %.9f", e, e.JD(), want)
		}
		y, m, d := e.Calendar()
		if want := julian.CalendarGregorianToJD(y, m, d); math.Abs(want-e.JD()) > 1e-8 {
			t.Errorf("%v: calendar %d %d %f gives JD %.9f", e, y, m, d, want)
		}
		ty, tm, td := e.Time().Date()
		if y != ty || m != int(tm) || int(d) != td {
			t.Errorf("%v: calendar %d-%d-%f", e, y, m, d)
		}
	}
}

func TestText(t *testing.T) {
	e := epoch.FromCalendar(2021, 6, 30, 6, 7, 8, 9)
	b, err := e.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "2021-06-30T06:07:08.000009" {
		t.Fatal(string(b))
	}
	var u epoch.Epoch
	if err := u.UnmarshalText(b); err != nil || u != e {
		t.Fatal(u, err)
	}
	if err := u.UnmarshalText([]byte("June")); !errors.Is(err, epoch.ErrFormat) {
		t.Fatal(err)
	}
}
