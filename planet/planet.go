// Public domain.

// Package planet wraps ephemeris providers of unrelated types behind one
// value, Planet.
//
// A provider, also called a udpla (user defined planet), is any value with
// an Eph method.  It may implement any of the optional interfaces in this
// package as well.  New checks the provider once for each of them and the
// Planet then either calls through or returns a fixed default.
package planet

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/soniakeys/kep/elements"
	"github.com/soniakeys/kep/epoch"
)

// State is a Cartesian position and velocity in the frame of the central
// body.
type State struct {
	R, V [3]float64
}

// Ephemeris is the one method a provider must have.
type Ephemeris interface {
	Eph(epoch.Epoch) (State, error)
}

// Optional provider interfaces.
type (
	Namer           interface{ Name() string }
	CentralBodyMuer interface{ MuCentralBody() float64 }
	SelfMuer        interface{ MuSelf() float64 }
	Radiuser        interface{ Radius() float64 }
	SafeRadiuser    interface{ SafeRadius() float64 }
	ExtraInfoer     interface{ ExtraInfo() string }

	// BatchEphemeris must return one state per epoch, in order, equal to
	// what Eph would return for each.
	BatchEphemeris interface {
		EphV([]epoch.Epoch) ([]State, error)
	}
	Elementser interface {
		Elements(epoch.Epoch, elements.Type) ([6]float64, error)
	}
	Perioder interface {
		Period(epoch.Epoch) (float64, error)
	}
)

var (
	ErrNotConstructible = errors.New("planet: cannot construct from this kind of value")
	ErrMalformed        = errors.New("planet: malformed udpla")
	ErrNotImplemented   = errors.New("planet: not implemented")
)

// Capability is a set of optional provider interfaces.
type Capability uint16

const (
	CapName Capability = 1 << iota
	CapMuCentralBody
	CapMuSelf
	CapRadius
	CapSafeRadius
	CapExtraInfo
	CapEphV
	CapElements
	CapPeriod
)

var capNames = []string{
	"name", "mu_central_body", "mu_self", "radius", "safe_radius",
	"extra_info", "eph_v", "elements", "period",
}

func (c Capability) String() string {
	var s []string
	for i, n := range capNames {
		if c&(1<<i) != 0 {
			s = append(s, n)
		}
	}
	return strings.Join(s, "|")
}

// capsOf computes the capabilities of a provider.
func capsOf(u any) (c Capability) {
	if _, ok := u.(Namer); ok {
		c |= CapName
	}
	if _, ok := u.(CentralBodyMuer); ok {
		c |= CapMuCentralBody
	}
	if _, ok := u.(SelfMuer); ok {
		c |= CapMuSelf
	}
	if _, ok := u.(Radiuser); ok {
		c |= CapRadius
	}
	if _, ok := u.(SafeRadiuser); ok {
		c |= CapSafeRadius
	}
	if _, ok := u.(ExtraInfoer); ok {
		c |= CapExtraInfo
	}
	if _, ok := u.(BatchEphemeris); ok {
		c |= CapEphV
	}
	if _, ok := u.(Elementser); ok {
		c |= CapElements
	}
	if _, ok := u.(Perioder); ok {
		c |= CapPeriod
	}
	return
}

// Planet holds one provider.
//
// The zero value holds no provider and acts as a null udpla: zero state at
// every epoch, name "null udpla", all numeric getters -1.
//
// Methods of Planet are safe for concurrent use if the methods of the
// provider are.  Planet adds no state of its own after New.
type Planet struct {
	udpla any
	eph   Ephemeris
	caps  Capability
}

// New wraps a provider.
//
// A Planet, *Planet or reflect.Type returns ErrNotConstructible, as does a
// struct embedding Planet or *Planet, which would otherwise pass with the
// promoted Eph and wrap a Planet twice.  A value without an Eph method, including nil and nil pointers, returns
// ErrMalformed.
//
// A provider stored by value is copied once here; use a pointer to share
// state with the caller and for Extract to return the same instance.
func New(udpla any) (*Planet, error) {
	switch udpla.(type) {
	case Planet, *Planet, reflect.Type:
		return nil, fmt.Errorf("%w: %T", ErrNotConstructible, udpla)
	}
	if udpla != nil && embedsPlanet(reflect.TypeOf(udpla)) {
		return nil, fmt.Errorf("%w: %T embeds planet.Planet", ErrNotConstructible, udpla)
	}
	eph, ok := udpla.(Ephemeris)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no method Eph(epoch.Epoch) (planet.State, error)",
			ErrMalformed, udpla)
	}
	if v := reflect.ValueOf(udpla); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, fmt.Errorf("%w: nil %T", ErrMalformed, udpla)
	}
	return &Planet{udpla: udpla, eph: eph, caps: capsOf(udpla)}, nil
}

var planetType = reflect.TypeFor[Planet]()

// embedsPlanet reports whether t, or the struct t points to, embeds Planet
// or *Planet, directly or through embedded struct values.
func embedsPlanet(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft == planetType || ft.Kind() == reflect.Pointer && ft.Elem() == planetType {
			return true
		}
		if ft.Kind() == reflect.Struct && embedsPlanet(ft) {
			return true
		}
	}
	return false
}

// Has reports whether the provider implements all capabilities in c.
func (p *Planet) Has(c Capability) bool { return p.caps&c == c }

// Provider returns the wrapped provider, nil for the zero Planet.
func (p *Planet) Provider() any { return p.udpla }

// Extract returns the provider if its dynamic type is exactly T.
// For pointer providers the result is the same pointer passed to New.
func Extract[T any](p *Planet) (T, bool) {
	var zero T
	if p == nil || p.udpla == nil || reflect.TypeOf(p.udpla) != reflect.TypeFor[T]() {
		return zero, false
	}
	return p.udpla.(T), true
}

// Is reports whether Extract[T] would succeed.
func Is[T any](p *Planet) bool {
	_, ok := Extract[T](p)
	return ok
}

// Name returns the provider name, by default its Go type.
func (p *Planet) Name() string {
	switch {
	case p.udpla == nil:
		return "null udpla"
	case p.caps&CapName != 0:
		return p.udpla.(Namer).Name()
	}
	return reflect.TypeOf(p.udpla).String()
}

// MuCentralBody returns the gravitational parameter of the central body,
// -1 if not defined.
func (p *Planet) MuCentralBody() float64 {
	if p.caps&CapMuCentralBody == 0 {
		return -1
	}
	return p.udpla.(CentralBodyMuer).MuCentralBody()
}

// MuSelf returns the gravitational parameter of the body, -1 if not
// defined.
func (p *Planet) MuSelf() float64 {
	if p.caps&CapMuSelf == 0 {
		return -1
	}
	return p.udpla.(SelfMuer).MuSelf()
}

// Radius returns the body radius, -1 if not defined.
func (p *Planet) Radius() float64 {
	if p.caps&CapRadius == 0 {
		return -1
	}
	return p.udpla.(Radiuser).Radius()
}

// SafeRadius returns the minimum safe distance from the body center, -1 if
// not defined.
func (p *Planet) SafeRadius() float64 {
	if p.caps&CapSafeRadius == 0 {
		return -1
	}
	return p.udpla.(SafeRadiuser).SafeRadius()
}

// ExtraInfo returns free form provider details, "" if not defined.
func (p *Planet) ExtraInfo() string {
	if p.caps&CapExtraInfo == 0 {
		return ""
	}
	return p.udpla.(ExtraInfoer).ExtraInfo()
}

func (p *Planet) wrap(err error) error {
	return fmt.Errorf("%s: %w", p.Name(), err)
}

// Eph returns the state at ep.
func (p *Planet) Eph(ep epoch.Epoch) (State, error) {
	if p.eph == nil {
		return State{}, nil
	}
	s, err := p.eph.Eph(ep)
	if err != nil {
		return State{}, p.wrap(err)
	}
	return s, nil
}

// EphV returns states at each of eps.  Providers without EphV are called
// once per epoch.
func (p *Planet) EphV(eps []epoch.Epoch) ([]State, error) {
	if p.caps&CapEphV != 0 {
		s, err := p.udpla.(BatchEphemeris).EphV(eps)
		if err != nil {
			return nil, p.wrap(err)
		}
		if len(s) != len(eps) {
			return nil, fmt.Errorf("%w: %s: EphV returned %d states for %d epochs",
				ErrMalformed, p.Name(), len(s), len(eps))
		}
		return s, nil
	}
	out := make([]State, len(eps))
	for i, ep := range eps {
		s, err := p.Eph(ep)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// epochOf converts the loosely typed epoch argument of Elements and Period.
func epochOf(when any) (epoch.Epoch, error) {
	if when == nil {
		return 0, nil
	}
	return epoch.From(when)
}

// Elements returns orbital elements of type t at epoch when.
//
// when may be nil for MJD2000 0, or anything epoch.From accepts.  Providers
// without Elements but with MuCentralBody get osculating elements computed
// from Eph.  Otherwise the result is ErrNotImplemented.
func (p *Planet) Elements(when any, t elements.Type) (el [6]float64, err error) {
	ep, err := epochOf(when)
	if err != nil {
		return
	}
	switch {
	case p.caps&CapElements != 0:
		if el, err = p.udpla.(Elementser).Elements(ep, t); err != nil {
			err = p.wrap(err)
		}
		return
	case p.caps&CapMuCentralBody == 0:
		return el, fmt.Errorf("%w: %s: Elements, and no MuCentralBody to compute them",
			ErrNotImplemented, p.Name())
	}
	s, err := p.Eph(ep)
	if err != nil {
		return
	}
	if el, err = elements.FromState(s.R, s.V, p.MuCentralBody(), t); err != nil {
		err = p.wrap(err)
	}
	return
}

// Period returns the orbital period at epoch when, which is interpreted as
// for Elements.  Providers without Period but with MuCentralBody get the
// period from the orbital energy of the state from Eph.
func (p *Planet) Period(when any) (float64, error) {
	ep, err := epochOf(when)
	if err != nil {
		return 0, err
	}
	switch {
	case p.caps&CapPeriod != 0:
		T, err := p.udpla.(Perioder).Period(ep)
		if err != nil {
			return 0, p.wrap(err)
		}
		return T, nil
	case p.caps&CapMuCentralBody == 0:
		return 0, fmt.Errorf("%w: %s: Period, and no MuCentralBody to compute it",
			ErrNotImplemented, p.Name())
	}
	s, err := p.Eph(ep)
	if err != nil {
		return 0, err
	}
	T, err := elements.Period(s.R, s.V, p.MuCentralBody())
	if err != nil {
		return 0, p.wrap(err)
	}
	return T, nil
}

// String formats the planet for display.
func (p *Planet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Planet name: %s\n", p.Name())
	if p.udpla != nil {
		fmt.Fprintf(&b, "Udpla type: %T\n", p.udpla)
	}
	fmt.Fprintf(&b, "Capabilities: %s\n", p.caps)
	fmt.Fprintf(&b, "Gravitational parameter of central body (-1 if not defined): %v\n",
		p.MuCentralBody())
	fmt.Fprintf(&b, "Gravitational parameter of body (-1 if not defined): %v\n", p.MuSelf())
	fmt.Fprintf(&b, "Radius (-1 if not defined): %v\n", p.Radius())
	fmt.Fprintf(&b, "Safe radius (-1 if not defined): %v\n", p.SafeRadius())
	if x := p.ExtraInfo(); x != "" {
		fmt.Fprintf(&b, "\nExtra info:\n%s\n", x)
	}
	return b.String()
}
