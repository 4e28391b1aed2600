// Package matrix models the package/version tables a CI harness iterates
// over and the queries that turn a configuration index into pip arguments.
package matrix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/k8ika0s/pipmatrix/internal/pyenv"
)

var (
	// ErrVersionTable flags a driver-keyed descriptor built without a
	// usable driver->versions table.
	ErrVersionTable = errors.New("driver version table required")
	// ErrDriverVersion flags a selector with no cataloged driver key at
	// or below it.
	ErrDriverVersion = errors.New("unresolvable driver version")
	// ErrNoVersions flags a descriptor whose version list came up empty.
	ErrNoVersions = errors.New("no installable versions")
)

// Placeholders substituted during name and URL template resolution.
const (
	DriverPlaceholder   = "{driver}"
	PlatformPlaceholder = "{platform}"
)

// Prober answers whether a candidate download URL exists.
type Prober interface {
	Reachable(url string) bool
}

// Env carries the host facts descriptors resolve against: the target
// interpreter version, the host's compatibility tags and the URL prober.
// It is built once at startup and read-only afterwards.
type Env struct {
	Python string
	Tags   []pyenv.Tag
	Probe  Prober
}

// Descriptor is one catalog entry: a query key plus the version table the
// matrix draws from.
type Descriptor interface {
	// Key is the identifier queries select on.
	Key() string
	// Name resolves the installable package name for a driver selector.
	Name(driver string) (string, error)
	// Versions lists installable versions in declaration order, filtered
	// to the current interpreter and driver bucket.
	Versions(driver string) ([]string, error)
	// InstallArgument renders the pip argument for one version index.
	InstallArgument(idx int, driver string) (string, error)
}

// NumVersions counts the installable versions of a descriptor.
func NumVersions(d Descriptor, driver string) (int, error) {
	vers, err := d.Versions(driver)
	if err != nil {
		return 0, err
	}
	return len(vers), nil
}

// VersionAt returns the version at idx. Out-of-range indices clamp to the
// first version, so a harness iterating a shared index degrades a package
// with fewer versions to its default instead of failing.
func VersionAt(d Descriptor, idx int, driver string) (string, error) {
	vers, err := d.Versions(driver)
	if err != nil {
		return "", err
	}
	if len(vers) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoVersions, d.Key())
	}
	if idx < 0 || idx >= len(vers) {
		idx = 0
	}
	return vers[idx], nil
}

// AllInstallArguments space-joins the install argument of every version
// index. The result is not one coherent install; each piece is a valid
// pip argument on its own, used for environment pre-warming.
func AllInstallArguments(d Descriptor, driver string) (string, error) {
	n, err := NumVersions(d, driver)
	if err != nil {
		return "", err
	}
	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		arg, err := d.InstallArgument(i, driver)
		if err != nil {
			return "", err
		}
		args = append(args, arg)
	}
	return strings.Join(args, " "), nil
}

// pinArgument renders the name==version form shared by the pinned variants.
func pinArgument(d Descriptor, idx int, driver string) (string, error) {
	name, err := d.Name(driver)
	if err != nil {
		return "", err
	}
	version, err := VersionAt(d, idx, driver)
	if err != nil {
		return "", err
	}
	return name + "==" + version, nil
}

// PlainPackage is a package whose versions do not depend on the driver;
// the selector is ignored entirely.
type PlainPackage struct {
	env      *Env
	key      string
	name     string
	versions []Constraint
}

// NewPlain builds a plain descriptor. An empty name defaults to the key.
func NewPlain(env *Env, key, name string, versions []Constraint) *PlainPackage {
	if name == "" {
		name = key
	}
	return &PlainPackage{env: env, key: key, name: name, versions: versions}
}

func (p *PlainPackage) Key() string { return p.key }

func (p *PlainPackage) Name(string) (string, error) { return p.name, nil }

func (p *PlainPackage) Versions(string) ([]string, error) {
	return applicable(p.env.Python, p.versions), nil
}

func (p *PlainPackage) InstallArgument(idx int, driver string) (string, error) {
	return pinArgument(p, idx, driver)
}

// DriverPackage buckets versions by accelerator driver version. The
// requested selector is floored to the nearest cataloged key that does not
// exceed it before the bucket is consulted.
type DriverPackage struct {
	env      *Env
	key      string
	name     string
	versions map[string][]Constraint
}

// NewDriverKeyed builds a driver-keyed descriptor. The version table must
// be a non-empty map with numeric driver keys; anything else is a catalog
// construction error.
func NewDriverKeyed(env *Env, key, name string, versions map[string][]Constraint) (*DriverPackage, error) {
	if name == "" {
		name = key
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: package %q", ErrVersionTable, key)
	}
	for k := range versions {
		if _, err := strconv.Atoi(k); err != nil {
			return nil, fmt.Errorf("%w: package %q has non-numeric driver key %q", ErrVersionTable, key, k)
		}
	}
	return &DriverPackage{env: env, key: key, name: name, versions: versions}, nil
}

func (p *DriverPackage) Key() string { return p.key }

func (p *DriverPackage) Name(driver string) (string, error) {
	resolved, err := p.resolveDriver(driver)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(p.name, DriverPlaceholder, resolved), nil
}

func (p *DriverPackage) Versions(driver string) ([]string, error) {
	resolved, err := p.resolveDriver(driver)
	if err != nil {
		return nil, err
	}
	return applicable(p.env.Python, p.versions[resolved]), nil
}

func (p *DriverPackage) InstallArgument(idx int, driver string) (string, error) {
	return pinArgument(p, idx, driver)
}

func (p *DriverPackage) resolveDriver(selector string) (string, error) {
	return floorDriver(p.versions, selector)
}

// floorDriver picks the largest cataloged driver key that does not exceed
// the requested selector, so a "95" host uses the "90" bucket. A selector
// below every cataloged key fails: there is no bucket it could safely run.
func floorDriver(versions map[string][]Constraint, selector string) (string, error) {
	want, err := strconv.Atoi(selector)
	if err != nil {
		return "", fmt.Errorf("%w: bad selector %q", ErrDriverVersion, selector)
	}
	best := ""
	bestN := 0
	for k := range versions {
		n, err := strconv.Atoi(k)
		if err != nil || n > want {
			continue
		}
		if best == "" || n > bestN {
			best, bestN = k, n
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: no cataloged driver version at or below %s", ErrDriverVersion, selector)
	}
	return best, nil
}

// RemotePackage resolves versions through direct download links: each
// bucket entry is a URL template with driver and platform placeholders,
// probed against the host's compatibility tags.
type RemotePackage struct {
	DriverPackage
}

// NewRemote builds a remote descriptor over a driver-keyed URL table.
func NewRemote(env *Env, key, name string, versions map[string][]Constraint) (*RemotePackage, error) {
	dp, err := NewDriverKeyed(env, key, name, versions)
	if err != nil {
		return nil, err
	}
	return &RemotePackage{DriverPackage: *dp}, nil
}

// Versions resolves each URL template to the first reachable concrete URL,
// trying compatibility tags in order. Templates with no reachable
// candidate are dropped, the same way an interpreter-filtered version is.
func (p *RemotePackage) Versions(driver string) ([]string, error) {
	resolved, err := p.resolveDriver(driver)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, tmpl := range applicable(p.env.Python, p.versions[resolved]) {
		if url, ok := p.resolveURL(tmpl, resolved); ok {
			out = append(out, url)
		}
	}
	return out, nil
}

// InstallArgument for a remote package is the download URL itself; pip
// takes it verbatim, with no name==version wrapping.
func (p *RemotePackage) InstallArgument(idx int, driver string) (string, error) {
	return VersionAt(p, idx, driver)
}

func (p *RemotePackage) resolveURL(tmpl, driverKey string) (string, bool) {
	if p.env.Probe == nil {
		return "", false
	}
	for _, tag := range p.env.Tags {
		if tag.Wildcard() {
			continue
		}
		url := strings.NewReplacer(
			PlatformPlaceholder, tag.String(),
			DriverPlaceholder, driverKey,
		).Replace(tmpl)
		if p.env.Probe.Reachable(url) {
			return url, true
		}
	}
	return "", false
}
