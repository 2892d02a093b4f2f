package timezone

import "strings"

// TableGuesser resolves places against built-in lookup tables: US states and
// their common abbreviations first, then a table of larger world cities. It is
// deliberately incomplete; unknown places simply produce no guess.
type TableGuesser struct{}

// Zone implements Guesser.
func (TableGuesser) Zone(place Place) (string, bool) {
	city := strings.ToLower(place.City)
	region := strings.ToLower(place.Country)

	if zone, ok := usStateZones[region]; ok {
		// San Jose, CA is pinned explicitly so a city-table hit for the more
		// populous San Jose, Costa Rica can never shadow it.
		if city == "san jose" && (region == "ca" || region == "california") {
			return "America/Los_Angeles", true
		}
		return zone, true
	}
	if zone, ok := cityZones[city]; ok {
		return zone, true
	}
	return "", false
}

// usStateZones maps US state names and abbreviations to the timezone covering
// most of the state. Multi-zone states get their dominant zone.
var usStateZones = map[string]string{
	"alabama": "America/Chicago", "al": "America/Chicago",
	"alaska": "America/Anchorage", "ak": "America/Anchorage",
	"arizona": "America/Phoenix", "az": "America/Phoenix",
	"arkansas": "America/Chicago", "ar": "America/Chicago",
	"california": "America/Los_Angeles", "ca": "America/Los_Angeles",
	"colorado": "America/Denver", "co": "America/Denver",
	"connecticut": "America/New_York", "ct": "America/New_York",
	"delaware": "America/New_York", "de": "America/New_York",
	"florida": "America/New_York", "fl": "America/New_York",
	"georgia": "America/New_York", "ga": "America/New_York",
	"hawaii": "America/Honolulu", "hi": "America/Honolulu",
	"idaho": "America/Denver", "id": "America/Denver",
	"illinois": "America/Chicago", "il": "America/Chicago",
	"indiana": "America/Indiana/Indianapolis", "in": "America/Indiana/Indianapolis",
	"iowa": "America/Chicago", "ia": "America/Chicago",
	"kansas": "America/Chicago", "ks": "America/Chicago",
	"kentucky": "America/New_York", "ky": "America/New_York",
	"louisiana": "America/Chicago", "la": "America/Chicago",
	"maine": "America/New_York", "me": "America/New_York",
	"maryland": "America/New_York", "md": "America/New_York",
	"massachusetts": "America/New_York", "ma": "America/New_York",
	"michigan": "America/Detroit", "mi": "America/Detroit",
	"minnesota": "America/Chicago", "mn": "America/Chicago",
	"mississippi": "America/Chicago", "ms": "America/Chicago",
	"missouri": "America/Chicago", "mo": "America/Chicago",
	"montana": "America/Denver", "mt": "America/Denver",
	"nebraska": "America/Chicago", "ne": "America/Chicago",
	"nevada": "America/Los_Angeles", "nv": "America/Los_Angeles",
	"new hampshire": "America/New_York", "nh": "America/New_York",
	"new jersey": "America/New_York", "nj": "America/New_York",
	"new mexico": "America/Denver", "nm": "America/Denver",
	"new york": "America/New_York", "ny": "America/New_York",
	"north carolina": "America/New_York", "nc": "America/New_York",
	"north dakota": "America/Chicago", "nd": "America/Chicago",
	"ohio": "America/New_York", "oh": "America/New_York",
	"oklahoma": "America/Chicago", "ok": "America/Chicago",
	"oregon": "America/Los_Angeles", "or": "America/Los_Angeles",
	"pennsylvania": "America/New_York", "pa": "America/New_York",
	"rhode island": "America/New_York", "ri": "America/New_York",
	"south carolina": "America/New_York", "sc": "America/New_York",
	"south dakota": "America/Chicago", "sd": "America/Chicago",
	"tennessee": "America/Chicago", "tn": "America/Chicago",
	"texas": "America/Chicago", "tx": "America/Chicago",
	"utah": "America/Denver", "ut": "America/Denver",
	"vermont": "America/New_York", "vt": "America/New_York",
	"virginia": "America/New_York", "va": "America/New_York",
	"washington": "America/Los_Angeles", "wa": "America/Los_Angeles",
	"west virginia": "America/New_York", "wv": "America/New_York",
	"wisconsin": "America/Chicago", "wi": "America/Chicago",
	"wyoming": "America/Denver", "wy": "America/Denver",
}

// cityZones covers cities that come up often in address books. Lookup is by
// lowercased city name alone, so ambiguous names resolve to the biggest city
// of that name.
var cityZones = map[string]string{
	"amsterdam":      "Europe/Amsterdam",
	"athens":         "Europe/Athens",
	"auckland":       "Pacific/Auckland",
	"bangkok":        "Asia/Bangkok",
	"barcelona":      "Europe/Madrid",
	"beijing":        "Asia/Shanghai",
	"berlin":         "Europe/Berlin",
	"bogota":         "America/Bogota",
	"boston":         "America/New_York",
	"brussels":       "Europe/Brussels",
	"buenos aires":   "America/Argentina/Buenos_Aires",
	"cairo":          "Africa/Cairo",
	"cape town":      "Africa/Johannesburg",
	"chicago":        "America/Chicago",
	"copenhagen":     "Europe/Copenhagen",
	"delhi":          "Asia/Kolkata",
	"dubai":          "Asia/Dubai",
	"dublin":         "Europe/Dublin",
	"helsinki":       "Europe/Helsinki",
	"hong kong":      "Asia/Hong_Kong",
	"istanbul":       "Europe/Istanbul",
	"jakarta":        "Asia/Jakarta",
	"johannesburg":   "Africa/Johannesburg",
	"lagos":          "Africa/Lagos",
	"lisbon":         "Europe/Lisbon",
	"london":         "Europe/London",
	"los angeles":    "America/Los_Angeles",
	"madrid":         "Europe/Madrid",
	"melbourne":      "Australia/Melbourne",
	"mexico city":    "America/Mexico_City",
	"miami":          "America/New_York",
	"moscow":         "Europe/Moscow",
	"mumbai":         "Asia/Kolkata",
	"nairobi":        "Africa/Nairobi",
	"new york":       "America/New_York",
	"oslo":           "Europe/Oslo",
	"paris":          "Europe/Paris",
	"prague":         "Europe/Prague",
	"rio de janeiro": "America/Sao_Paulo",
	"rome":           "Europe/Rome",
	"san francisco":  "America/Los_Angeles",
	"sao paulo":      "America/Sao_Paulo",
	"seattle":        "America/Los_Angeles",
	"seoul":          "Asia/Seoul",
	"shanghai":       "Asia/Shanghai",
	"singapore":      "Asia/Singapore",
	"stockholm":      "Europe/Stockholm",
	"sydney":         "Australia/Sydney",
	"tel aviv":       "Asia/Jerusalem",
	"tokyo":          "Asia/Tokyo",
	"toronto":        "America/Toronto",
	"vancouver":      "America/Vancouver",
	"vienna":         "Europe/Vienna",
	"warsaw":         "Europe/Warsaw",
	"zurich":         "Europe/Zurich",
}
