// Package config loads pipmatrix settings from the environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds tool settings. Flags override these; these override the
// built-in defaults.
type Config struct {
	// Driver is the default accelerator driver version selector.
	Driver string
	// Python overrides the probed target interpreter version.
	Python string
	// PlatformTags overrides the probed compatibility tags.
	PlatformTags []string
	// CatalogPath points at a catalog overlay file; empty uses the
	// built-in table.
	CatalogPath string
	// ProbeTimeout bounds each remote existence probe.
	ProbeTimeout time.Duration
	// Verbose enables debug logging.
	Verbose bool
}

// Load reads PIPMATRIX_* environment variables over defaults.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("pipmatrix")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("driver", "90")
	v.SetDefault("python", "")
	v.SetDefault("platform-tags", "")
	v.SetDefault("catalog", "")
	v.SetDefault("probe-timeout", 30*time.Second)
	v.SetDefault("verbose", false)

	return Config{
		Driver:       v.GetString("driver"),
		Python:       v.GetString("python"),
		PlatformTags: strings.Fields(v.GetString("platform-tags")),
		CatalogPath:  v.GetString("catalog"),
		ProbeTimeout: v.GetDuration("probe-timeout"),
		Verbose:      v.GetBool("verbose"),
	}
}
