package matrix

import (
	"github.com/Masterminds/semver/v3"
)

// Constraint is a package version gated on the target interpreter version.
// A zero MinPython/MaxPython leaves that side unbounded.
type Constraint struct {
	Version   string `yaml:"version"`
	MinPython string `yaml:"min_python,omitempty"`
	MaxPython string `yaml:"max_python,omitempty"`
}

// Applicable reports whether the version may be installed under the given
// interpreter version. Comparison is semantic, so "3.10" sorts above "3.7".
func (c Constraint) Applicable(python string) bool {
	if c.MinPython == "" && c.MaxPython == "" {
		return true
	}
	cur, err := semver.NewVersion(python)
	if err != nil {
		return false
	}
	if c.MinPython != "" {
		lo, err := semver.NewVersion(c.MinPython)
		if err == nil && cur.LessThan(lo) {
			return false
		}
	}
	if c.MaxPython != "" {
		hi, err := semver.NewVersion(c.MaxPython)
		if err == nil && cur.GreaterThan(hi) {
			return false
		}
	}
	return true
}

// applicable keeps the versions the interpreter supports, in declaration
// order. Filtered entries are simply absent from the result.
func applicable(python string, versions []Constraint) []string {
	out := make([]string, 0, len(versions))
	for _, c := range versions {
		if c.Applicable(python) {
			out = append(out, c.Version)
		}
	}
	return out
}
