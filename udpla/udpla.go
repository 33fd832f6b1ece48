// Public domain.

// Package udpla has ephemeris providers for use with planet.New.
//
//	Keplerian  two body propagation of osculating elements
//	JPLLP      JPL approximate positions of the major planets
//	TLE        SGP4 propagation of a two line element set
//
// All work in SI units, metres and seconds.
package udpla

import "errors"

// Physical constants, SI.
const (
	AU       = 149597870700.
	MuSun    = 1.32712440018e20
	MuEarth  = 398600441800000.
	DaySec   = 86400.
	Century  = 36525. // days
	EarthRad = 6378137.
)

var (
	ErrEpochRange    = errors.New("udpla: epoch out of range")
	ErrUnknownPlanet = errors.New("udpla: unknown planet")
	ErrTLEFormat     = errors.New("udpla: malformed TLE")
	ErrPropagation   = errors.New("udpla: propagation failed")
)
