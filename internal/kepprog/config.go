// Public domain.

package kepprog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/soniakeys/kep/elements"
	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/planet"
	"github.com/soniakeys/kep/udpla"
)

// config is the body configuration file, kep.yaml by default.
//
//	headings: true
//	units: au          # m, km or au
//	elements: KEP_M    # optional, print elements rather than states
//	bodies:
//	  - jpl_lp: mars
//	  - keplerian:
//	      name: scout
//	      epoch: 2022-03-04
//	      mu: 1.32712440018e20
//	      type: KEP_F
//	      elements: [1.5e11, .1, .05, 1, 2, 3]
type config struct {
	Headings *bool        `yaml:"headings"`
	Units    string       `yaml:"units"`
	Elements string       `yaml:"elements"`
	Bodies   []bodyConfig `yaml:"bodies"`
}

type bodyConfig struct {
	JPLLP     string           `yaml:"jpl_lp"`
	Keplerian *keplerianConfig `yaml:"keplerian"`
}

type keplerianConfig struct {
	Name       string    `yaml:"name"`
	Epoch      string    `yaml:"epoch"`
	Mu         float64   `yaml:"mu"`
	Type       string    `yaml:"type"`
	Elements   []float64 `yaml:"elements"`
	MuSelf     *float64  `yaml:"mu_self"`
	Radius     *float64  `yaml:"radius"`
	SafeRadius *float64  `yaml:"safe_radius"`
}

// the major planets, used when there is no config file
var defaultBodies = []string{"mercury", "venus", "earth", "mars",
	"jupiter", "saturn", "uranus", "neptune"}

type units struct {
	name     string
	r, v     float64 // metres per position unit, m/s per velocity unit
	rvLabels [2]string
}

var unitTable = map[string]units{
	"m":  {"m", 1, 1, [2]string{"m", "m/s"}},
	"km": {"km", 1e3, 1e3, [2]string{"km", "km/s"}},
	"au": {"au", udpla.AU, udpla.AU / udpla.DaySec, [2]string{"AU", "AU/d"}},
}

// outputOptions is the validated form of config.
type outputOptions struct {
	headings bool
	units    units
	elements bool
	elType   elements.Type
}

func defaultConfig() *config {
	c := &config{}
	for _, n := range defaultBodies {
		c.Bodies = append(c.Bodies, bodyConfig{JPLLP: n})
	}
	return c
}

// readConfig reads the config file named on the command line, or the
// default file.  A missing default file is not an error.
func readConfig(cl *commandLine) (*config, error) {
	data, err := os.ReadFile(cl.fixupCP(cl.dc, "kep.yaml"))
	if err != nil {
		if cl.dc == "" && errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(c.Bodies) == 0 {
		def := defaultConfig()
		c.Bodies = def.Bodies
	}
	return &c, nil
}

func (c *config) options() (*outputOptions, error) {
	opt := &outputOptions{headings: c.Headings == nil || *c.Headings}
	u := strings.ToLower(c.Units)
	if u == "" {
		u = "au"
	}
	var ok bool
	if opt.units, ok = unitTable[u]; !ok {
		return nil, fmt.Errorf("config: unknown units %q", c.Units)
	}
	if c.Elements != "" {
		t, err := elements.ParseType(strings.ToUpper(c.Elements))
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opt.elements, opt.elType = true, t
	}
	return opt, nil
}

// planets constructs the configured bodies, in config order.
func (c *config) planets() ([]*planet.Planet, error) {
	ps := make([]*planet.Planet, len(c.Bodies))
	var g errgroup.Group
	for i, b := range c.Bodies {
		g.Go(func() error {
			u, err := b.provider()
			if err != nil {
				return fmt.Errorf("config: body %d: %w", i+1, err)
			}
			ps[i], err = planet.New(u)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (b *bodyConfig) provider() (any, error) {
	switch {
	case b.JPLLP != "" && b.Keplerian != nil:
		return nil, errors.New("jpl_lp and keplerian both given")
	case b.JPLLP != "":
		return udpla.NewJPLLP(b.JPLLP)
	case b.Keplerian != nil:
		return b.Keplerian.provider()
	}
	return nil, errors.New("no provider given")
}

func (k *keplerianConfig) provider() (*udpla.Keplerian, error) {
	if len(k.Elements) != 6 {
		return nil, fmt.Errorf("keplerian: %d elements, want 6", len(k.Elements))
	}
	ref, err := parseEpoch(k.Epoch)
	if err != nil {
		return nil, fmt.Errorf("keplerian: %w", err)
	}
	t := elements.KepF
	if k.Type != "" {
		if t, err = elements.ParseType(strings.ToUpper(k.Type)); err != nil {
			return nil, err
		}
	}
	bp := &udpla.BodyParams{Name: k.Name, MuSelf: -1, Radius: -1, SafeRadius: -1}
	if bp.Name == "" {
		bp.Name = "Unknown"
	}
	for _, p := range []struct {
		v   *float64
		dst *float64
	}{{k.MuSelf, &bp.MuSelf}, {k.Radius, &bp.Radius}, {k.SafeRadius, &bp.SafeRadius}} {
		if p.v != nil {
			*p.dst = *p.v
		}
	}
	return udpla.NewKeplerian(ref, [6]float64(k.Elements), t, k.Mu, bp)
}

// parseEpoch parses a calendar string as accepted by epoch.Parse, a bare
// number of MJD2000 days, or a number preceded by MJD2000, MJD or JD.
func parseEpoch(s string) (epoch.Epoch, error) {
	s = strings.TrimSpace(s)
	if f := strings.Fields(s); len(f) == 2 {
		for _, jt := range []epoch.JulianType{epoch.MJD2000, epoch.MJD, epoch.JD} {
			if strings.EqualFold(f[0], jt.String()) {
				d, err := strconv.ParseFloat(f[1], 64)
				if err != nil {
					return 0, fmt.Errorf("%w: %q", epoch.ErrFormat, s)
				}
				return epoch.New(d, jt)
			}
		}
	}
	if d, err := strconv.ParseFloat(s, 64); err == nil {
		return epoch.New(d, epoch.MJD2000)
	}
	return epoch.Parse(s)
}
