package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

// TestNormalizePrefersStructuredFields checks that city/country win over the
// legacy location string when both representations are present.
func TestNormalizePrefersStructuredFields(t *testing.T) {
	place := Normalize(strPtr("Berlin"), strPtr("Germany"), strPtr("Paris, France"))
	assert.Equal(t, Place{City: "Berlin", Country: "Germany"}, place)
}

// TestNormalizeLegacyLocation checks that an old-style "City, Country" string
// splits on the first comma and trims whitespace.
func TestNormalizeLegacyLocation(t *testing.T) {
	place := Normalize(nil, nil, strPtr("  Austin ,  Texas "))
	assert.Equal(t, Place{City: "Austin", Country: "Texas"}, place)
}

// TestNormalizeLegacyLocationCityOnly checks a legacy value without a comma.
func TestNormalizeLegacyLocationCityOnly(t *testing.T) {
	place := Normalize(nil, nil, strPtr("Tokyo"))
	assert.Equal(t, Place{City: "Tokyo"}, place)
}

// TestNormalizeAllNil checks that fully absent inputs produce an empty place.
func TestNormalizeAllNil(t *testing.T) {
	assert.Equal(t, Place{}, Normalize(nil, nil, nil))
}

// TestTableGuesserUSStates checks state names and abbreviations, including
// the San Jose exception.
func TestTableGuesserUSStates(t *testing.T) {
	g := TableGuesser{}

	zone, ok := g.Zone(Place{City: "Austin", Country: "Texas"})
	assert.True(t, ok)
	assert.Equal(t, "America/Chicago", zone)

	zone, ok = g.Zone(Place{City: "Denver", Country: "CO"})
	assert.True(t, ok)
	assert.Equal(t, "America/Denver", zone)

	zone, ok = g.Zone(Place{City: "San Jose", Country: "CA"})
	assert.True(t, ok)
	assert.Equal(t, "America/Los_Angeles", zone)
}

// TestTableGuesserCities checks the world-city fallback.
func TestTableGuesserCities(t *testing.T) {
	g := TableGuesser{}

	zone, ok := g.Zone(Place{City: "Tokyo"})
	assert.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", zone)

	zone, ok = g.Zone(Place{City: "BERLIN", Country: "Germany"})
	assert.True(t, ok)
	assert.Equal(t, "Europe/Berlin", zone)
}

// TestTableGuesserUnknown checks that unknown places produce no guess.
func TestTableGuesserUnknown(t *testing.T) {
	g := TableGuesser{}
	_, ok := g.Zone(Place{City: "Springfield"})
	assert.False(t, ok)
	_, ok = g.Zone(Place{})
	assert.False(t, ok)
}

// TestLocalTime checks formatting of a known instant in a guessed zone.
func TestLocalTime(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	got, ok := LocalTime(TableGuesser{}, Place{City: "London"}, now)
	assert.True(t, ok)
	assert.Equal(t, "1:00 PM", got) // BST in June

	_, ok = LocalTime(TableGuesser{}, Place{City: "Nowhereville"}, now)
	assert.False(t, ok)
}
