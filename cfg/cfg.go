//Package cfg reads the yaml configuration for path validation: bond-check
//tolerances and the interpolation/persistence settings. Everything has a
//default, so an empty file, or no file at all, is a valid configuration.
package cfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chemtools/nebprep/bondcheck"
	"github.com/chemtools/nebprep/interp"
)

// Cfg is a structure containing the parameters specified in the configuration
// file. It can be instanced through New or by hand; if by hand, use the Check
// method to verify it meets the requirements.
type Cfg struct {
	// MinScale is the smallest accepted ratio between an interatomic
	// distance and the sum of the two covalent radii. 0 means the default.
	MinScale float64 `yaml:"min_scale"`

	// AbsMin is the hard distance floor, in A, applied to pairs whose
	// covalent radii are unknown. 0 means the default.
	AbsMin float64 `yaml:"abs_min"`

	// Method is the interpolation method, "linear" or "idpp". Empty means
	// linear.
	Method string `yaml:"method"`

	// Save specifies whether generated paths are written to Traj.
	Save bool `yaml:"save"`

	// Traj is the file the interpolated path is saved to when Save is set.
	// Empty means the default, interpolation.traj.
	Traj string `yaml:"traj"`

	// Verbose turns on per-image and per-contact logging.
	Verbose bool `yaml:"verbose"`
}

// New reads the configuration from the yaml file at path and checks it.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cfg: %w", err)
	}
	defer f.Close()
	c := &Cfg{Save: true}
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("cfg: decode %s: %w", path, err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// Check verifies that the configuration meets the requirements of the
// bondcheck and interp packages.
func (c *Cfg) Check() error {
	if c.MinScale < 0 || c.MinScale >= 1 {
		return fmt.Errorf("cfg: min_scale must be in [0, 1), got %v", c.MinScale)
	}
	if c.AbsMin < 0 {
		return fmt.Errorf("cfg: abs_min must not be negative, got %v", c.AbsMin)
	}
	if c.Method != "" {
		if _, err := interp.ParseMethod(c.Method); err != nil {
			return fmt.Errorf("cfg: %w", err)
		}
	}
	return nil
}

// Tolerances builds the bond-check tolerances from the configuration,
// falling back to the bondcheck defaults for unset values.
func (c *Cfg) Tolerances() *bondcheck.Tolerances {
	t := bondcheck.Default()
	if c.MinScale > 0 {
		t.MinScale = c.MinScale
	}
	if c.AbsMin > 0 {
		t.AbsMin = c.AbsMin
	}
	t.Verbose = c.Verbose
	return t
}

// Options builds the interpolation options from the configuration. The
// configuration must have passed Check.
func (c *Cfg) Options() *interp.Options {
	o := interp.DefaultOptions()
	if c.Method != "" {
		m, _ := interp.ParseMethod(c.Method)
		o.Method(m)
	}
	o.Persist(c.Save)
	o.TrajName(c.Traj)
	o.Verbose(c.Verbose)
	return o
}
