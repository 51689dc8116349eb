package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marathonviz/domain/results"
)

func TestContinentStandardNames(t *testing.T) {
	r := NewContinentResolver(nil)

	tests := map[string]Continent{
		"Estonia":   Europe,
		"Kenya":     Africa,
		"Japan":     Asia,
		"Brazil":    SouthAmerica,
		"Canada":    NorthAmerica,
		"Australia": Oceania,
	}
	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := r.Continent(name)
			require.NoError(t, err)
			assert.Equal(t, expected, c)
		})
	}
}

func TestContinentOverrides(t *testing.T) {
	r := NewContinentResolver(nil)

	for name, expected := range DefaultOverrides {
		t.Run(name, func(t *testing.T) {
			c, err := r.Continent(name)
			require.NoError(t, err)
			assert.Equal(t, expected, c)
		})
	}
}

func TestContinentOverrideBeatsClassifier(t *testing.T) {
	r := NewContinentResolver(nil)

	c, err := r.Continent("Netherlands Antilles")
	require.NoError(t, err)
	assert.Equal(t, SouthAmerica, c)

	r = NewContinentResolver(map[string]Continent{"Estonia": Asia})
	c, err = r.Continent("Estonia")
	require.NoError(t, err)
	assert.Equal(t, Asia, c)
}

func TestContinentExtraOverrides(t *testing.T) {
	r := NewContinentResolver(map[string]Continent{"Atlantis": Europe})

	c, err := r.Continent("Atlantis")
	require.NoError(t, err)
	assert.Equal(t, Europe, c)
}

func TestContinentNotFound(t *testing.T) {
	r := NewContinentResolver(nil)

	for _, name := range []string{"Atlantis", "", "   "} {
		c, err := r.Continent(name)
		assert.ErrorIs(t, err, ErrContinentNotFound)
		assert.Empty(t, c)
	}
}

func TestResolverIsClassifier(t *testing.T) {
	var classifier results.Classifier = NewContinentResolver(nil)

	label, err := classifier.Classify("Estonia")
	require.NoError(t, err)
	assert.Equal(t, "Europe", label)

	label, err = classifier.Classify("Atlantis")
	assert.Error(t, err)
	assert.Empty(t, label)
}
