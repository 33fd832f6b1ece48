/*
Command kep evaluates orbits of configured bodies at a list of epochs.

Contents

Version 0.1

  Program overview
  Command line usage
  Configuring file locations
  File formats
  Library packages


Program overview

Input is a file of epochs, one per line.  Output is, for each epoch and each
configured body, a line with the body's position and velocity, or
optionally its osculating orbital elements.

Sample run:

Here are a few epochs, in the forms kep accepts.

	2023-10-17
	2023-10-17 13:54
	MJD 60300
	JD 2460400.5
	8800

You put them in a file, say ep.txt, then type "kep ep.txt" and get a
heading line and then one line per epoch per body, in input order.  With the
default configuration the bodies are the eight major planets from JPL's
low precision ephemeris, positions in AU and velocities in AU per day,
heliocentric ecliptic J2000.

Epochs are processed concurrently, but output is always in input order.
Lines that are blank or start with # are ignored.  Other lines that are not
valid epochs are reported on stderr and skipped.


Command line usage

Invoking the program without command line arguments (or with invalid
arguments) shows this usage prompt.

  Usage: kep [options] <epochfile>    evaluate bodies at epochs in file
         kep [options] -              evaluate bodies at epochs from stdin
         kep -h                       display help and quick reference
         kep -v                       display version and configured bodies

  Options:
       -c <config-file>
       -p <path>

The help information lists a quick reference to configuration keys, element
types and planet names.


Configuring file locations

The configuration file is kep.yaml, in the directory given by -p.  The -p
default is a "kep" directory under the user configuration directory, shown
at the end of the usage message.  If -c is given, the file it names is used
instead and is required to exist.  If -c is not given and kep.yaml is
absent, the default configuration is used.


File formats

An epoch is one of

	a UTC calendar date, 2023-10-17, 2023-10, 2023-10-17T13,
	2023-10-17T13:54 or 2023-10-17T13:54:05.25, with T or a space
	a number, taken as MJD2000 days
	MJD2000, MJD or JD followed by a number

The configuration file is YAML:

	headings: true       # default true
	units: km            # m, km or au, default au
	elements: KEP_M      # optional, output elements rather than states
	bodies:
	  - jpl_lp: mars
	  - keplerian:
	      name: scout
	      epoch: 2022-03-04
	      mu: 1.32712440018e20
	      type: KEP_F
	      elements: [1.5e11, .1, .05, 1, 2, 3]
	      radius: 1000

jpl_lp names a planet, mercury through neptune.  A keplerian body is given
by six elements of the named type at a reference epoch, with mu the
gravitational parameter of the central body in m^3/s^2.  Element types are
KEP_F (a, e, i, W, w, true anomaly), KEP_M (mean anomaly in place of true
anomaly), MEE and MEE_R (modified equinoctial, direct and retrograde) and
POSVEL.  Lengths are metres and angles radians.  An empty bodies list means
the eight major planets.

When elements are output, values are in metres and radians regardless of
units.


Library packages

	anomaly   conversions between true, eccentric, mean and hyperbolic anomalies
	epoch     instants as integer microseconds from 2000-01-01
	elements  osculating element sets and conversions
	planet    the Planet wrapper over ephemeris providers
	udpla     Keplerian, JPL low precision and TLE/SGP4 providers

-------------
Public domain.
*/
package main
