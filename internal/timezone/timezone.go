// Package timezone guesses a contact's IANA timezone from where they live.
// The guess is best-effort and non-authoritative: it exists so that listings
// can show "3:05 PM their time" next to a contact, and nothing else depends on
// it. Scheduling never consults this package.
package timezone

import (
	"strings"
	"time"
)

// Place is the normalized home of a contact. Old records carried a single
// free-form "location" string; Normalize turns either representation into this
// one shape exactly once at the boundary, so nothing downstream ever branches
// on the legacy format.
type Place struct {
	City    string
	Country string
}

// Normalize builds a Place from the structured city/country fields, falling
// back to splitting a legacy "City, Country" location string on the first
// comma. Any of the inputs may be nil.
func Normalize(city, country, location *string) Place {
	place := Place{}
	if city != nil {
		place.City = strings.TrimSpace(*city)
	}
	if country != nil {
		place.Country = strings.TrimSpace(*country)
	}
	if place.City != "" || place.Country != "" {
		return place
	}
	if location == nil {
		return place
	}
	before, after, found := strings.Cut(*location, ",")
	place.City = strings.TrimSpace(before)
	if found {
		place.Country = strings.TrimSpace(after)
	}
	return place
}

// Guesser maps a place to an IANA timezone name. The boolean reports whether
// a guess could be made at all; an unknown place is a normal outcome, not an
// error.
type Guesser interface {
	Zone(place Place) (string, bool)
}

// LocalTime formats the current wall-clock time at the given place, e.g.
// "3:04 PM". It returns false when the place is unknown to the guesser or the
// guessed zone is not loadable on this system.
func LocalTime(g Guesser, place Place, now time.Time) (string, bool) {
	name, ok := g.Zone(place)
	if !ok {
		return "", false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return "", false
	}
	return now.In(loc).Format("3:04 PM"), true
}
