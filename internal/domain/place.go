package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	locationSeparator = " of "

	// DefaultOffset prefixes places that carry no relative offset.
	DefaultOffset = "Near the"
)

// relativePlaceRe parses USGS relative places: "<distance>km <compass> of <primary>",
// e.g. "5km N of Cairo, Egypt" -> distance=5, direction=N, primary="Cairo, Egypt".
var relativePlaceRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*km\s+([NSEW]{1,3})\s+of\s+(.+)$`)

// SplitPlace splits a place into an offset ("5km N of") and a primary location
// ("Cairo, Egypt"). Places without the " of " separator get DefaultOffset and
// keep the whole string as primary.
func SplitPlace(place string) Location {
	place = strings.TrimSpace(place)
	loc := Location{Raw: place}
	if place == "" {
		loc.Offset = DefaultOffset
		return loc
	}

	if m := relativePlaceRe.FindStringSubmatch(place); len(m) == 4 {
		if d, err := strconv.ParseFloat(m[1], 64); err == nil {
			loc.Distance = d
			loc.Direction = m[2]
		}
	}

	offset, primary, ok := strings.Cut(place, locationSeparator)
	if !ok {
		loc.Offset = DefaultOffset
		loc.Primary = place
		return loc
	}

	loc.Offset = strings.TrimSpace(offset) + " of"
	loc.Primary = strings.TrimSpace(primary)
	return loc
}
