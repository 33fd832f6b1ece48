// Public domain.

package sgp4_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/soniakeys/kep/internal/sgp4"
)

const d2r = math.Pi / 180

// elements of catalog 04632, a twelve hour orbit with one day resonance
var el04632 = sgp4.Elements{
	Epoch: 19754.91070959,
	Bstar: .1e-3,
	Incl:  11.4628 * d2r,
	Node:  273.1101 * d2r,
	Ecc:   .1450506,
	ArgP:  207.6 * d2r,
	M:     143.935 * d2r,
	N:     1.20231981 * 2 * math.Pi / 1440,
}

var el00005 = sgp4.Elements{
	Epoch: 18441.78495062,
	Bstar: .28098e-4,
	Incl:  34.2682 * d2r,
	Node:  348.7242 * d2r,
	Ecc:   .1859667,
	ArgP:  331.7664 * d2r,
	M:     19.3264 * d2r,
	N:     10.82419157 * 2 * math.Pi / 1440,
}

func TestPropagate(t *testing.T) {
	for _, c := range []struct {
		name   string
		el     sgp4.Elements
		tsince float64
		r, v   [3]float64
	}{
		{"00005", el00005, 720,
			[3]float64{-7134.59340119, 6531.68641334, 3260.27186483},
			[3]float64{-4.113793027, -2.911922039, -2.557327851}},
		{"04632", el04632, -5184,
			[3]float64{-29020.02587128, 13819.84419063, -5713.33679183},
			[3]float64{-1.768068390, -3.235371192, -0.395206135}},
	} {
		p, err := sgp4.New(c.el)
		require.NoError(t, err, c.name)
		r, v, err := p.Propagate(c.tsince)
		require.NoError(t, err, c.name)
		for i := range r {
			assert.InDelta(t, c.r[i], r[i], 1e-6, "%s r[%d]", c.name, i)
			assert.InDelta(t, c.v[i], v[i], 1e-8, "%s v[%d]", c.name, i)
		}
	}
}

// The resonance integrator restarts from epoch, so results do not depend
// on call order and concurrent calls agree with sequential ones.
func TestPropagateStateless(t *testing.T) {
	p, err := sgp4.New(el04632)
	require.NoError(t, err)
	ts := []float64{-5184, 3000, -5184, 20000, 1.5, -4944.25, 3000}
	want := make([][3]float64, len(ts))
	for i, m := range ts {
		want[i], _, err = p.Propagate(m)
		require.NoError(t, err)
	}
	assert.Equal(t, want[0], want[2])
	assert.Equal(t, want[1], want[6])

	got := make([][3]float64, len(ts))
	var g errgroup.Group
	for i, m := range ts {
		g.Go(func() (err error) {
			got[i], _, err = p.Propagate(m)
			return
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, want, got)
}

func TestNewInvalid(t *testing.T) {
	for _, c := range []struct {
		name string
		mod  func(*sgp4.Elements)
	}{
		{"parabolic", func(el *sgp4.Elements) { el.Ecc = 1 }},
		{"negative e", func(el *sgp4.Elements) { el.Ecc = -.1 }},
		{"zero n", func(el *sgp4.Elements) { el.N = 0 }},
		{"NaN n", func(el *sgp4.Elements) { el.N = math.NaN() }},
	} {
		el := el00005
		c.mod(&el)
		_, err := sgp4.New(el)
		assert.ErrorIs(t, err, sgp4.ErrElements, c.name)
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "sgp4: satellite has decayed", sgp4.Error(6).Error())
	assert.Equal(t, "sgp4: error", sgp4.Error(5).Error())
	assert.Equal(t, "sgp4: error", sgp4.Error(99).Error())
	var e sgp4.Error
	assert.True(t, errors.As(error(sgp4.Error(4)), &e))
	assert.Equal(t, sgp4.Error(4), e)
}
