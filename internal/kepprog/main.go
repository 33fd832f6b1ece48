// Public domain.

// Package kepprog implements the kep command.
package kepprog

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soniakeys/exit"

	"github.com/soniakeys/kep/elements"
	"github.com/soniakeys/kep/udpla"
)

const versionString = "kep version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()
	cfg, err := readConfig(cl)
	if err != nil {
		exit.Log(err)
	}
	opt, err := cfg.options()
	if err != nil {
		exit.Log(err)
	}
	bodies, err := cfg.planets()
	if err != nil {
		exit.Log(err)
	}
	if cl.v {
		for _, p := range bodies {
			fmt.Printf("%s: %s\n", p.Name(), p.ExtraInfo())
		}
		os.Exit(0)
	}

	var f *os.File
	if cl.fnEp == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(cl.fnEp)
		if err != nil {
			exit.Log(err)
		}
		defer f.Close()
	}
	if err := run(f, os.Stdout, bodies, opt); err != nil {
		exit.Log(err)
	}
}

type commandLine struct {
	dc   string // config file
	dp   string // default path
	fnEp string // epochs
	v    bool   // -v option
}

func parseCommandLine() *commandLine {
	var cl commandLine
	cd, cdErr := os.UserConfigDir()
	if cdErr == nil {
		cl.dp = filepath.Join(cd, "kep")
	}
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.dc, "c", "", "")
	flag.StringVar(&cl.dp, "p", cl.dp, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: kep [options] <epochfile>    evaluate bodies at epochs in file
       kep [options] -              evaluate bodies at epochs from stdin
       kep -h                       display help and quick reference
       kep -v                       display version and configured bodies

Options:
       -c <config-file>
       -p <path>
`)
		if cdErr == nil {
			os.Stderr.WriteString(`
Default:
       -p=` + cl.dp + "\n")
		}
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		cl.v = true
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(1)
	}
	cl.fnEp = flag.Arg(0)
	return &cl
}

func (cl *commandLine) fixupCP(fnSpec, fnDefault string) string {
	if fnSpec > "" {
		return fnSpec
	}
	return filepath.Join(cl.dp, fnDefault)
}

func printHelp() {
	fmt.Println(`
Kep evaluates the positions and velocities of configured bodies at a list
of epochs, one epoch per input line.  An epoch is a UTC calendar date such
as 2023-10-17 or 2023-10-17T13:54:05, a number of MJD2000 days, or a
number preceded by MJD2000, MJD or JD.

Config file (YAML) keys:
   headings   true or false
   units      m, km or au
   elements   element type, print elements rather than states
   bodies     list of jpl_lp: <planet> or keplerian: entries

Keplerian entry keys:
   name epoch mu type elements mu_self radius safe_radius

Element types:`)
	for t := elements.KepF; t <= elements.PosVel; t++ {
		fmt.Printf("   %s\n", t)
	}
	fmt.Println("\nJPL LP planets:")
	for _, n := range defaultBodies {
		fmt.Printf("   %s\n", n)
	}
	fmt.Printf(`
Units of mu are m^3/s^2.  The sun is %g.

For full documentation:
   go doc github.com/soniakeys/kep
`, udpla.MuSun)
}
