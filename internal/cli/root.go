// Package cli wires the pipmatrix command surface. Query results go to
// stdout as a single line; diagnostics go to stderr.
package cli

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/k8ika0s/pipmatrix/internal/config"
	"github.com/k8ika0s/pipmatrix/internal/matrix"
	"github.com/k8ika0s/pipmatrix/internal/probe"
	"github.com/k8ika0s/pipmatrix/internal/pyenv"
)

// Version is set via -ldflags at release time.
var Version = "dev"

// options carries the flag values shared by every subcommand.
type options struct {
	driver       string
	useKeys      []string
	python       string
	platformTags []string
	catalogPath  string
	probeTimeout time.Duration
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "pipmatrix",
		Short: "Generate pip install strings for ML test matrices",
		Long: `pipmatrix enumerates pip install argument strings across the
cross-product of Python interpreter version, accelerator driver version and
library version, so a CI harness can iterate over configuration N
deterministically instead of maintaining version lists by hand.`,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.driver, "driver", "", "accelerator driver version selector (e.g. 100)")
	pf.StringSliceVarP(&opts.useKeys, "use", "u", nil, "restrict queries to these package keys")
	pf.StringVar(&opts.python, "python", "", "target Python version (default: probed from python3)")
	pf.StringSliceVar(&opts.platformTags, "platform-tags", nil, "compatibility tags (default: probed from pip)")
	pf.StringVar(&opts.catalogPath, "catalog", "", "catalog overlay file (YAML)")
	pf.DurationVar(&opts.probeTimeout, "timeout", 0, "timeout per remote existence probe")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListCmd(opts),
		newCountCmd(opts),
		newInstallCmd(opts),
		newRemoveCmd(opts),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// newCatalog folds environment config under the flags, probes the host
// environment and builds the catalog the command queries.
func newCatalog(cmd *cobra.Command, opts *options) (*matrix.Catalog, string, error) {
	cfg := config.Load()
	flags := cmd.Flags()
	if !flags.Changed("driver") {
		opts.driver = cfg.Driver
	}
	if !flags.Changed("python") {
		opts.python = cfg.Python
	}
	if !flags.Changed("platform-tags") {
		opts.platformTags = cfg.PlatformTags
	}
	if !flags.Changed("catalog") {
		opts.catalogPath = cfg.CatalogPath
	}
	if !flags.Changed("timeout") {
		opts.probeTimeout = cfg.ProbeTimeout
	}
	if opts.verbose || cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	env, err := buildEnv(cmd.Context(), opts)
	if err != nil {
		return nil, "", err
	}
	if opts.catalogPath != "" {
		cat, err := matrix.LoadFile(opts.catalogPath, env)
		return cat, opts.driver, err
	}
	cat, err := matrix.Default(env)
	return cat, opts.driver, err
}

func buildEnv(ctx context.Context, opts *options) (*matrix.Env, error) {
	version := opts.python
	if version == "" {
		probed, err := pyenv.Version(ctx)
		if err != nil {
			log.Warn("python probe failed, assuming default",
				"version", pyenv.DefaultVersion, "err", err)
			probed = pyenv.DefaultVersion
		}
		version = probed
	}

	var tags []pyenv.Tag
	if len(opts.platformTags) > 0 {
		for _, raw := range opts.platformTags {
			t, err := pyenv.ParseTag(raw)
			if err != nil {
				return nil, err
			}
			tags = append(tags, t)
		}
	} else {
		probed, err := pyenv.SupportedTags(ctx)
		if err != nil {
			log.Warn("compatibility tag probe failed, remote packages resolve to nothing", "err", err)
		}
		tags = probed
	}

	return &matrix.Env{
		Python: version,
		Tags:   tags,
		Probe:  &probe.Client{HTTP: &http.Client{Timeout: opts.probeTimeout}},
	}, nil
}
