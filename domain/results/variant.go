package results

import (
	"fmt"
	"sort"

	"marathonviz/domain/core"
)

// GroupingStrategy selects how an entity's group label is derived.
type GroupingStrategy string

const (
	GroupNone   GroupingStrategy = "none"
	GroupPrefix GroupingStrategy = "prefix" // first PrefixLength characters of Source
	GroupColumn GroupingStrategy = "column" // Source copied as-is
	GroupLookup GroupingStrategy = "lookup" // Classifier applied to Source
)

// Classifier maps a value such as a country name to a group label.
type Classifier interface {
	Classify(value string) (string, error)
}

// Grouping describes how to annotate rows with a group label.
type Grouping struct {
	Strategy     GroupingStrategy
	Source       string // column read by the strategy; lookup defaults to the id column
	PrefixLength int
	Prepend      bool // emit the group column before the input columns
}

// Label derives the group label of rec. Lookup failures degrade to "".
func (g Grouping) Label(rec Record, idColumn string, classifier Classifier) string {
	switch g.Strategy {
	case GroupPrefix:
		runes := []rune(rec.Get(g.Source))
		n := g.PrefixLength
		if n <= 0 {
			n = 1
		}
		if len(runes) < n {
			n = len(runes)
		}
		return string(runes[:n])
	case GroupColumn:
		return rec.Get(g.Source)
	case GroupLookup:
		if classifier == nil {
			return ""
		}
		source := g.Source
		if source == "" {
			source = idColumn
		}
		label, err := classifier.Classify(rec.Get(source))
		if err != nil {
			return ""
		}
		return label
	default:
		return ""
	}
}

// MedianGroup requests one median pseudo-row for the rows whose group label
// equals Key ("" selects every row). Template supplies the row's other cells.
type MedianGroup struct {
	Key      string
	Template Record
}

// DerivedColumns names the columns added to the output.
type DerivedColumns struct {
	Hour         string
	Minute       string
	Second       string
	TotalSeconds string
	SecPerKm     string
	MinPerKm     string
	KmPerHour    string
	SortKey      string
	Checkpoint   string
	Distance     string
}

// Names returns the per-entity derived columns in output order, followed by
// the checkpoint and distance columns.
func (c DerivedColumns) Names() []string {
	return []string{
		c.Hour, c.Minute, c.Second, c.TotalSeconds, c.SecPerKm,
		c.MinPerKm, c.KmPerHour, c.SortKey, c.Checkpoint, c.Distance,
	}
}

// WithDefaults fills unset names from EnglishColumns.
func (c DerivedColumns) WithDefaults() DerivedColumns {
	d := EnglishColumns
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return DerivedColumns{
		Hour:         pick(c.Hour, d.Hour),
		Minute:       pick(c.Minute, d.Minute),
		Second:       pick(c.Second, d.Second),
		TotalSeconds: pick(c.TotalSeconds, d.TotalSeconds),
		SecPerKm:     pick(c.SecPerKm, d.SecPerKm),
		MinPerKm:     pick(c.MinPerKm, d.MinPerKm),
		KmPerHour:    pick(c.KmPerHour, d.KmPerHour),
		SortKey:      pick(c.SortKey, d.SortKey),
		Checkpoint:   pick(c.Checkpoint, d.Checkpoint),
		Distance:     pick(c.Distance, d.Distance),
	}
}

// Variant parameterizes the pipeline for one kind of result table.
type Variant struct {
	Name             string
	Description      string
	IDColumn         string
	FinishTimeColumn string
	GroupColumn      string // output column holding the group label; "" for none
	Grouping         Grouping
	Medians          []MedianGroup
	Columns          DerivedColumns

	// AnimationInterval is the variant's preferred checkpoint spacing in
	// minutes, used when the run settings leave it unset.
	AnimationInterval int
}

// Validate checks that the variant names the columns the pipeline needs.
func (v Variant) Validate() error {
	if v.IDColumn == "" {
		return core.NewConfigurationError(fmt.Sprintf("variant %q", v.Name), "needs an id column")
	}
	if v.FinishTimeColumn == "" {
		return core.NewConfigurationError(fmt.Sprintf("variant %q", v.Name), "needs a finish time column")
	}
	switch v.Grouping.Strategy {
	case "", GroupNone, GroupLookup:
	case GroupPrefix, GroupColumn:
		if v.Grouping.Source == "" {
			return core.NewConfigurationError(fmt.Sprintf("variant %q", v.Name), "grouping needs a source column")
		}
	default:
		return core.NewConfigurationError(fmt.Sprintf("variant %q", v.Name), fmt.Sprintf("unknown grouping strategy %q", v.Grouping.Strategy))
	}
	if v.Grouping.Strategy != "" && v.Grouping.Strategy != GroupNone && v.GroupColumn == "" {
		return core.NewConfigurationError(fmt.Sprintf("variant %q", v.Name), "grouping needs a group column")
	}
	return nil
}

// MedianKeys returns the group keys medians are requested for.
func (v Variant) MedianKeys() []string {
	keys := make([]string, len(v.Medians))
	for i, m := range v.Medians {
		keys[i] = m.Key
	}
	return keys
}

// Catalog is a set of variants addressable by name.
type Catalog map[string]Variant

// Names returns the variant names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named variant.
func (c Catalog) Lookup(name string) (Variant, error) {
	v, ok := c[name]
	if !ok {
		return Variant{}, core.NewConfigurationError("variant", fmt.Sprintf("%q is not defined", name))
	}
	return v, nil
}
