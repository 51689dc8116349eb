// Package geo maps country names to continents.
package geo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biter777/countries"
)

// Continent is a continent label as written to the output.
type Continent string

const (
	Africa       Continent = "Africa"
	Asia         Continent = "Asia"
	Europe       Continent = "Europe"
	NorthAmerica Continent = "North-America"
	SouthAmerica Continent = "South-America"
	Oceania      Continent = "Oceania"
)

// ErrContinentNotFound is returned when neither the country classifier nor
// the override table knows a name.
var ErrContinentNotFound = errors.New("continent not found")

var regionContinents = map[countries.RegionCode]Continent{
	countries.RegionAF: Africa,
	countries.RegionAS: Asia,
	countries.RegionEU: Europe,
	countries.RegionNA: NorthAmerica,
	countries.RegionSA: SouthAmerica,
	countries.RegionOC: Oceania,
}

// DefaultOverrides covers names used in athletics records that a standard
// country classification does not recognize or places elsewhere.
var DefaultOverrides = map[string]Continent{
	"England":                 Europe,
	"Wales":                   Europe,
	"Scotland":                Europe,
	"Northern Ireland":        Europe,
	"Kosovo":                  Europe,
	"Chinese Taipei":          Asia,
	"Palestinian territories": Asia,
	"East Timor":              Asia,
	"Netherlands Antilles":    SouthAmerica,
	"Saint Helena":            Africa,
}

// ContinentResolver looks names up in an override table first and in the
// standard country classification second.
type ContinentResolver struct {
	overrides map[string]Continent
}

// NewContinentResolver creates a resolver with DefaultOverrides plus extra
// overrides; extra entries win.
func NewContinentResolver(extra map[string]Continent) *ContinentResolver {
	overrides := make(map[string]Continent, len(DefaultOverrides)+len(extra))
	for name, c := range DefaultOverrides {
		overrides[name] = c
	}
	for name, c := range extra {
		overrides[name] = c
	}
	return &ContinentResolver{overrides: overrides}
}

// Continent returns the continent of a country name.
func (r *ContinentResolver) Continent(name string) (Continent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrContinentNotFound)
	}

	// Listed names win over the classifier.
	if c, ok := r.overrides[name]; ok {
		return c, nil
	}

	if code := countries.ByName(name); code != countries.Unknown {
		if c, ok := regionContinents[code.Region()]; ok {
			return c, nil
		}
		return "", fmt.Errorf("%w: %s has no continent", ErrContinentNotFound, name)
	}
	return "", fmt.Errorf("%w: %s", ErrContinentNotFound, name)
}

// Classify implements results.Classifier.
func (r *ContinentResolver) Classify(value string) (string, error) {
	c, err := r.Continent(value)
	return string(c), err
}
