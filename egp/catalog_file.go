package egp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSpec is the on-disk form of a catalog:
//
//	output:
//	  label: out
//	  strong: [0]
//	groups:
//	  - regular:
//	      - {label: add, strong: [0, 0]}
//	    terminal:
//	      - {label: x}
//	weak_map:
//	  call: def
type CatalogSpec struct {
	Output  BlueprintSpec     `yaml:"output" validate:"required"`
	Groups  []GroupSpec       `yaml:"groups" validate:"required,min=1,dive"`
	WeakMap map[string]string `yaml:"weak_map"`
}

// GroupSpec lists the regular and terminal blueprints of one group.
type GroupSpec struct {
	Regular  []BlueprintSpec `yaml:"regular" validate:"dive"`
	Terminal []BlueprintSpec `yaml:"terminal" validate:"dive"`
}

// BlueprintSpec describes one blueprint. Activity is only honoured on the output.
type BlueprintSpec struct {
	Label    string `yaml:"label" validate:"required"`
	Activity int    `yaml:"activity" validate:"gte=0"`
	Strong   []int  `yaml:"strong"`
	Weak     []int  `yaml:"weak"`
}

func (b BlueprintSpec) blueprint() Blueprint {
	return Blueprint{Activity: b.Activity, Label: b.Label, Strong: b.Strong, Weak: b.Weak}
}

// ParseCatalogSpec decodes and validates a YAML catalog definition.
func ParseCatalogSpec(data []byte) (*CatalogSpec, error) {
	spec := &CatalogSpec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := validate.Struct(spec); err != nil {
		return nil, fmt.Errorf("catalog error: %w", err)
	}
	return spec, nil
}

// Build turns the definition into a Catalog.
func (s *CatalogSpec) Build(src Source) (*Catalog, error) {
	regular := make([][]Blueprint, len(s.Groups))
	terminal := make([][]Blueprint, len(s.Groups))
	for g, group := range s.Groups {
		for _, bp := range group.Regular {
			regular[g] = append(regular[g], bp.blueprint())
		}
		for _, bp := range group.Terminal {
			terminal[g] = append(terminal[g], bp.blueprint())
		}
	}
	return BuildCatalog(s.Output.blueprint(), regular, terminal, s.WeakMap, src)
}

// LoadCatalogFile reads a YAML catalog definition and builds the catalog.
func LoadCatalogFile(path string, src Source) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file '%s': %w", path, err)
	}
	spec, err := ParseCatalogSpec(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file '%s': %w", path, err)
	}
	catalog, err := spec.Build(src)
	if err != nil {
		return nil, fmt.Errorf("catalog file '%s': %w", path, err)
	}
	return catalog, nil
}
