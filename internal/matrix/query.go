package matrix

import (
	"fmt"
	"io"
	"strings"
)

// TotalCombinations is the size of the version cross-product over the
// requested keys; packages matching no requested key contribute a factor
// of one. This is the bound the count query reports. The index mapping
// itself is not a cross-product walk, see InstallStrings.
func (c *Catalog) TotalCombinations(keys []string, driver string) (int, error) {
	requested := keySet(keys)
	total := 1
	for _, d := range c.packages {
		if _, ok := requested[d.Key()]; !ok {
			continue
		}
		n, err := NumVersions(d, driver)
		if err != nil {
			return 0, err
		}
		total *= n
	}
	return total, nil
}

// InstallStrings renders the Nth configuration: the same raw index is
// applied to every requested package and clamped per package, so a package
// with fewer versions than N degrades to its first version. Deliberately
// not a mixed-radix enumeration; external harnesses depend on this exact
// index-to-configuration mapping.
func (c *Catalog) InstallStrings(idx int, keys []string, driver string) (string, error) {
	return c.collect(keys, func(d Descriptor) (string, error) {
		return d.InstallArgument(idx, driver)
	})
}

// RemoveString lists the resolved names of the requested packages, with no
// version suffixes, for building a pip uninstall argument list.
func (c *Catalog) RemoveString(keys []string, driver string) (string, error) {
	return c.collect(keys, func(d Descriptor) (string, error) {
		return d.Name(driver)
	})
}

// AllInstallStrings renders every version of every requested package side
// by side, for environment pre-warming.
func (c *Catalog) AllInstallStrings(keys []string, driver string) (string, error) {
	return c.collect(keys, func(d Descriptor) (string, error) {
		return AllInstallArguments(d, driver)
	})
}

// List writes every cataloged package's resolved name and its applicable
// versions, one version per indented line.
func (c *Catalog) List(w io.Writer, driver string) error {
	for _, d := range c.packages {
		name, err := d.Name(driver)
		if err != nil {
			return err
		}
		vers, err := d.Versions(driver)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
			return err
		}
		for _, v := range vers {
			if _, err := fmt.Fprintf(w, "\t%s\n", v); err != nil {
				return err
			}
		}
	}
	return nil
}

// collect applies fn to every cataloged descriptor whose key was requested,
// in catalog order, then appends the requested keys with no catalog entry
// verbatim. The passthrough lets a harness pull in ad-hoc packages the
// table does not know, at their default versions.
func (c *Catalog) collect(keys []string, fn func(Descriptor) (string, error)) (string, error) {
	requested := keySet(keys)
	var parts []string
	for _, d := range c.packages {
		if _, ok := requested[d.Key()]; !ok {
			continue
		}
		s, err := fn(d)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	for _, k := range keys {
		if !c.has(k) {
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, " "), nil
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
