package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"marathonviz/domain/results"
	"marathonviz/internal/errors"
)

// VariantsFile is the YAML document listing additional variants.
//
//	variants:
//	  - name: half
//	    id_column: NAME
//	    finish_time_column: TIME
//	    group_column: GENDER
//	    grouping: {strategy: column, source: SEX}
//	    medians:
//	      - key: F
//	        template: {NAME: "Women median"}
//	    columns_preset: english
//	    animation_interval: 2
type VariantsFile struct {
	Variants []VariantSpec `yaml:"variants" validate:"dive"`
}

// VariantSpec is the YAML form of results.Variant
type VariantSpec struct {
	Name              string            `yaml:"name" validate:"required"`
	Description       string            `yaml:"description"`
	IDColumn          string            `yaml:"id_column" validate:"required"`
	FinishTimeColumn  string            `yaml:"finish_time_column" validate:"required"`
	GroupColumn       string            `yaml:"group_column"`
	Grouping          GroupingSpec      `yaml:"grouping"`
	Medians           []MedianSpec      `yaml:"medians" validate:"dive"`
	ColumnsPreset     string            `yaml:"columns_preset" validate:"omitempty,oneof=english estonian"`
	Columns           map[string]string `yaml:"columns"`
	AnimationInterval int               `yaml:"animation_interval" validate:"gte=0"`
}

// GroupingSpec is the YAML form of results.Grouping
type GroupingSpec struct {
	Strategy     string `yaml:"strategy" validate:"omitempty,oneof=none prefix column lookup"`
	Source       string `yaml:"source"`
	PrefixLength int    `yaml:"prefix_length" validate:"gte=0"`
	Prepend      bool   `yaml:"prepend"`
}

// MedianSpec is the YAML form of results.MedianGroup
type MedianSpec struct {
	Key      string            `yaml:"key"`
	Template map[string]string `yaml:"template"`
}

// LoadVariants reads a variant catalog from path and layers it over the
// built-in variants. An empty path yields the built-in catalog.
func LoadVariants(path string) (results.Catalog, error) {
	catalog := results.Builtin()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError("read variants file", path, err)
	}

	extra, err := ParseVariants(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load variants from %s", path)
	}
	for name, v := range extra {
		catalog[name] = v
	}
	return catalog, nil
}

// ParseVariants decodes and validates a YAML variants document.
func ParseVariants(data []byte) (results.Catalog, error) {
	var file VariantsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("malformed variants YAML: %v", err))
	}
	if err := validate.Struct(file); err != nil {
		return nil, errors.ConfigInvalid(describeValidation(err))
	}

	catalog := make(results.Catalog, len(file.Variants))
	for _, spec := range file.Variants {
		if _, dup := catalog[spec.Name]; dup {
			return nil, errors.ConfigInvalid(fmt.Sprintf("variant %q defined twice", spec.Name))
		}
		v, err := spec.toVariant()
		if err != nil {
			return nil, err
		}
		catalog[v.Name] = v
	}
	return catalog, nil
}

func (s VariantSpec) toVariant() (results.Variant, error) {
	columns, err := s.columns()
	if err != nil {
		return results.Variant{}, err
	}

	medians := make([]results.MedianGroup, len(s.Medians))
	for i, m := range s.Medians {
		medians[i] = results.MedianGroup{Key: m.Key, Template: results.Record(m.Template)}
	}

	v := results.Variant{
		Name:             s.Name,
		Description:      s.Description,
		IDColumn:         s.IDColumn,
		FinishTimeColumn: s.FinishTimeColumn,
		GroupColumn:      s.GroupColumn,
		Grouping: results.Grouping{
			Strategy:     results.GroupingStrategy(s.Grouping.Strategy),
			Source:       s.Grouping.Source,
			PrefixLength: s.Grouping.PrefixLength,
			Prepend:      s.Grouping.Prepend,
		},
		Medians:           medians,
		Columns:           columns,
		AnimationInterval: s.AnimationInterval,
	}
	if err := v.Validate(); err != nil {
		return results.Variant{}, errors.Wrap(err, "invalid variant")
	}
	return v, nil
}

// columns starts from the preset and applies per-column renames keyed by
// the lower-case field name ("sec_per_km", "distance", ...).
func (s VariantSpec) columns() (results.DerivedColumns, error) {
	c := results.EnglishColumns
	if s.ColumnsPreset == "estonian" {
		c = results.EstonianColumns
	}
	fields := map[string]*string{
		"hour":          &c.Hour,
		"minute":        &c.Minute,
		"second":        &c.Second,
		"total_seconds": &c.TotalSeconds,
		"sec_per_km":    &c.SecPerKm,
		"min_per_km":    &c.MinPerKm,
		"km_per_hour":   &c.KmPerHour,
		"sort_key":      &c.SortKey,
		"checkpoint":    &c.Checkpoint,
		"distance":      &c.Distance,
	}
	for key, name := range s.Columns {
		field, ok := fields[key]
		if !ok {
			return results.DerivedColumns{}, errors.ConfigInvalid(fmt.Sprintf("variant %q: unknown column key %q", s.Name, key))
		}
		*field = name
	}
	return c, nil
}
