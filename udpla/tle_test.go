// Public domain.

package udpla_test

import (
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/planet"
	"github.com/soniakeys/kep/udpla"
)

const (
	tle1 = "1 33773U 97051L   23290.57931959  .00002095  00000+0  65841-3 0  9991"
	tle2 = "2 33773  86.4068  33.1145 0009956 224.5064 135.5336 14.40043565770064"
)

func minutes(ref epoch.Epoch, m float64) epoch.Epoch {
	return ref.AddDuration(time.Duration(m * float64(time.Minute)))
}

// Verification cases from Vallado et al., "Revisiting Spacetrack Report
// #3", WGS72.  Element set epochs fall between whole seconds.
func TestTLEVerification(t *testing.T) {
	for _, c := range []struct {
		l1, l2 string
		tsince float64    // minutes
		r      [3]float64 // km
		v      [3]float64 // km/s
	}{
		{"1 00005U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753",
			"2 00005  34.2682 348.7242 1859667 331.7664  19.3264 10.82419157413667",
			0, [3]float64{7022.46529266, -1400.08296755, 0.03995155},
			[3]float64{1.893841015, 6.405893759, 4.534807250}},
		{"1 00005U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753",
			"2 00005  34.2682 348.7242 1859667 331.7664  19.3264 10.82419157413667",
			360, [3]float64{-7154.03120202, -3783.17682504, -3536.19412294},
			[3]float64{4.741887409, -4.151817765, -2.093935425}},
		{"1 00005U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753",
			"2 00005  34.2682 348.7242 1859667 331.7664  19.3264 10.82419157413667",
			720, [3]float64{-7134.59340119, 6531.68641334, 3260.27186483},
			[3]float64{-4.113793027, -2.911922039, -2.557327851}},
		{"1 00005U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753",
			"2 00005  34.2682 348.7242 1859667 331.7664  19.3264 10.82419157413667",
			1440, [3]float64{-938.55923943, -6268.18748831, -4294.02924751},
			[3]float64{7.536105209, -0.427127707, 0.989878080}},
		// deep space, one day resonance
		{"1 04632U 70093B   04031.91070959 -.00000084  00000-0  10000-3 0  9955",
			"2 04632  11.4628 273.1101 1450506 207.6000 143.9350  1.20231981 44145",
			0, [3]float64{2334.11450085, -41920.44035349, -0.03867437},
			[3]float64{2.826321032, -0.065091664, 0.570936053}},
		{"1 04632U 70093B   04031.91070959 -.00000084  00000-0  10000-3 0  9955",
			"2 04632  11.4628 273.1101 1450506 207.6000 143.9350  1.20231981 44145",
			-5184, [3]float64{-29020.02587128, 13819.84419063, -5713.33679183},
			[3]float64{-1.768068390, -3.235371192, -0.395206135}},
		// geosynchronous, low inclination
		{"1 24208U 96044A   06177.04061740 -.00000094  00000-0  10000-3 0  1600",
			"2 24208   3.8536  80.0121 0026640 311.0977  48.3000  1.00778054 36119",
			600, [3]float64{-26751.08889828, -32515.13982431, 1384.38865570},
			[3]float64{2.366228869, -1.951032799, -0.181018498}},
		{"1 06251U 62025E   06176.82412014  .00008885  00000-0  12808-3 0  3985",
			"2 06251  58.0579  54.0425 0030035 139.1568 221.1854 15.56387291  6774",
			120, [3]float64{-3935.69800083, 409.10980837, 5471.33577327},
			[3]float64{-3.374784183, -6.635211043, -1.942056221}},
	} {
		u, err := udpla.NewTLE(c.l1, c.l2)
		require.NoError(t, err)
		require.NotZero(t, u.RefEpoch().Time().Nanosecond(), "epoch on a whole second")
		s, err := u.Eph(minutes(u.RefEpoch(), c.tsince))
		require.NoError(t, err)
		msg := u.Name() + " " + time.Duration(c.tsince*float64(time.Minute)).String()
		for i := range c.r {
			assert.InDelta(t, c.r[i]*1e3, s.R[i], 1, "%s R[%d]", msg, i)
			assert.InDelta(t, c.v[i]*1e3, s.V[i], 1e-3, "%s V[%d]", msg, i)
		}
	}
}

func TestTLESubSecond(t *testing.T) {
	u, err := udpla.NewTLE(tle1, tle2)
	require.NoError(t, err)
	ep1 := u.RefEpoch().Add(1)
	ep2 := ep1.AddDuration(450 * time.Millisecond)
	s1, err := u.Eph(ep1)
	require.NoError(t, err)
	s2, err := u.Eph(ep2)
	require.NoError(t, err)
	// mean velocity over .45 s predicts the displacement to well under
	// the 3 km a one second time step would produce
	for i := range s1.R {
		dr := (s1.V[i] + s2.V[i]) / 2 * .45
		assert.InDelta(t, s1.R[i]+dr, s2.R[i], .05, "R[%d]", i)
	}
}

// go-satellite truncates epochs and times to whole seconds.  With both on
// whole seconds the two agree.
func TestTLEGoSatellite(t *testing.T) {
	l1 := tle1[:18] + "23290.50000000" + tle1[32:]
	u, err := udpla.NewTLE(l1, tle2)
	require.NoError(t, err)
	assert.Equal(t, epoch.FromCalendar(2023, 10, 17, 12, 0, 0, 0), u.RefEpoch())

	s, err := u.Eph(epoch.FromCalendar(2023, 10, 31, 0, 0, 0, 0))
	require.NoError(t, err)
	sat := satellite.TLEToSat(l1, tle2, satellite.GravityWGS72)
	r, v := satellite.Propagate(sat, 2023, 10, 31, 0, 0, 0)
	assertVecInDelta(t, [3]float64{r.X * 1e3, r.Y * 1e3, r.Z * 1e3}, s.R, 1, "R")
	assertVecInDelta(t, [3]float64{v.X * 1e3, v.Y * 1e3, v.Z * 1e3}, s.V, 1e-3, "V")

	// low earth orbit, metres
	rm := math.Sqrt(s.R[0]*s.R[0] + s.R[1]*s.R[1] + s.R[2]*s.R[2])
	assert.InDelta(t, 7.1e6, rm, .2e6)
}

func TestTLEGetters(t *testing.T) {
	u, err := udpla.NewTLE(tle1+"\n", tle2+"  ")
	require.NoError(t, err)
	p, err := planet.New(u)
	require.NoError(t, err)
	assert.Equal(t, "33773 - SGP4", p.Name())
	assert.Equal(t, udpla.MuEarth, p.MuCentralBody())
	assert.Equal(t, -1., p.MuSelf())
	assert.Equal(t, -1., p.SafeRadius())
	assert.Equal(t, "TLE line1: "+tle1+"\nTLE line2: "+tle2, p.ExtraInfo())
	assert.True(t, p.Has(planet.CapEphV))

	// day 290.57931959 exactly, 13:54:13.212576
	ref := u.RefEpoch()
	assert.Equal(t, epoch.FromCalendar(2023, 10, 17, 13, 54, 13, 212576), ref)

	// osculating period of a 14.4 rev/day orbit
	T, err := p.Period(ref)
	require.NoError(t, err)
	assert.InDelta(t, 86400/14.40043565, T, 60)
}

func TestTLEBatch(t *testing.T) {
	u, err := udpla.NewTLE(tle1, tle2)
	require.NoError(t, err)
	eps := make([]epoch.Epoch, 40)
	for i := range eps {
		eps[i] = u.RefEpoch().Add(float64(i) * .1)
	}
	batch, err := u.EphV(eps)
	require.NoError(t, err)
	require.Len(t, batch, len(eps))
	for i, ep := range eps {
		s, err := u.Eph(ep)
		require.NoError(t, err)
		assert.Equal(t, s, batch[i], "epoch %d", i)
	}
	empty, err := u.EphV(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTLEECEF(t *testing.T) {
	u, err := udpla.NewTLE(tle1, tle2)
	require.NoError(t, err)
	ep := u.RefEpoch().Add(.3)
	s, err := u.Eph(ep)
	require.NoError(t, err)
	f, err := u.ECEF(ep)
	require.NoError(t, err)
	// rotation about z keeps z and the distance from the axis
	assert.InDelta(t, s.R[2], f[2], 1e-6)
	assert.InDelta(t, math.Hypot(s.R[0], s.R[1]), math.Hypot(f[0], f[1]), 1e-6)
}

func TestTLEMalformed(t *testing.T) {
	for _, c := range []struct{ name, l1, l2 string }{
		{"short", tle1[:60], tle2},
		{"long", tle1, tle2 + "0"},
		{"swapped", tle2, tle1},
		{"catalog", tle1, "2 33774" + tle2[7:]},
		{"empty", "", ""},
		{"epoch", tle1[:18] + "xx290.57931959" + tle1[32:], tle2},
		{"day", tle1[:18] + "23000.57931959" + tle1[32:], tle2},
		{"ndot", tle1[:33] + " .0000X095" + tle1[43:], tle2},
		{"nddot", tle1[:44] + " 00000+X" + tle1[52:], tle2},
		{"bstar", tle1[:53] + " 658X1-3" + tle1[61:], tle2},
		{"inclination", tle1, tle2[:8] + " 86.40x8" + tle2[16:]},
		{"eccentricity", tle1, tle2[:26] + "00099X6" + tle2[33:]},
		{"eccentricity sign", tle1, tle2[:26] + "-009956" + tle2[33:]},
		{"mean motion", tle1, tle2[:52] + "14.4004356X" + tle2[63:]},
	} {
		_, err := udpla.NewTLE(c.l1, c.l2)
		assert.ErrorIs(t, err, udpla.ErrTLEFormat, c.name)
	}
}

func TestTLEInitError(t *testing.T) {
	_, err := udpla.NewTLE(tle1, tle2[:52]+" 0.00000000"+tle2[63:])
	assert.ErrorIs(t, err, udpla.ErrPropagation)
}
