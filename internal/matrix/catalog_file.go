package matrix

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileSpec is the YAML shape of a catalog overlay file. A harness can pin
// its own matrix without rebuilding the tool:
//
//	packages:
//	  - key: opencv-python
//	    versions: ["4.2.0.32"]
//	  - key: cupy
//	    name: "cupy-cuda{driver}"
//	    driver_versions:
//	      "90": ["7.3.0"]
//	  - key: tensorflow-gpu
//	    driver_versions:
//	      "100":
//	        - version: "1.15.2"
//	          max_python: "3.7"
//	        - "2.2.0"
//	  - key: torch
//	    remote: true
//	    driver_versions:
//	      "100": ["http://host/whl/torch-1.4.0-{platform}.whl"]
type fileSpec struct {
	Packages []packageSpec `yaml:"packages"`
}

type packageSpec struct {
	Key            string                   `yaml:"key"`
	Name           string                   `yaml:"name"`
	Remote         bool                     `yaml:"remote"`
	Versions       []versionSpec            `yaml:"versions"`
	DriverVersions map[string][]versionSpec `yaml:"driver_versions"`
}

// versionSpec accepts either a bare version scalar or a mapping with
// interpreter bounds.
type versionSpec struct {
	Constraint
}

func (v *versionSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&v.Version)
	}
	var aux Constraint
	if err := node.Decode(&aux); err != nil {
		return err
	}
	if aux.Version == "" {
		return fmt.Errorf("version entry missing version field")
	}
	v.Constraint = aux
	return nil
}

// LoadFile reads a catalog overlay, replacing the built-in table. Overlay
// packages go through the same construction checks as the defaults.
func LoadFile(path string, env *Env) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var doc fileSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(doc.Packages) == 0 {
		return nil, fmt.Errorf("catalog %s declares no packages", path)
	}
	var b catalogBuilder
	for _, p := range doc.Packages {
		switch {
		case p.Key == "":
			return nil, fmt.Errorf("catalog %s: package with empty key", path)
		case p.Remote:
			if len(p.Versions) > 0 {
				return nil, fmt.Errorf("catalog %s: remote package %q needs driver_versions, not versions", path, p.Key)
			}
			b.add(NewRemote(env, p.Key, p.Name, constraintTable(p.DriverVersions)))
		case len(p.DriverVersions) > 0:
			if len(p.Versions) > 0 {
				return nil, fmt.Errorf("catalog %s: package %q mixes versions and driver_versions", path, p.Key)
			}
			b.add(NewDriverKeyed(env, p.Key, p.Name, constraintTable(p.DriverVersions)))
		default:
			b.add(NewPlain(env, p.Key, p.Name, constraints(p.Versions)), nil)
		}
	}
	return b.catalog()
}

func constraints(specs []versionSpec) []Constraint {
	out := make([]Constraint, len(specs))
	for i, s := range specs {
		out[i] = s.Constraint
	}
	return out
}

func constraintTable(specs map[string][]versionSpec) map[string][]Constraint {
	out := make(map[string][]Constraint, len(specs))
	for k, vs := range specs {
		out[k] = constraints(vs)
	}
	return out
}
