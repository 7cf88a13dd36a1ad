// Package domain models USGS earthquake feed records.
//
// # Data Source
//
// Records come from the USGS FDSN event web service
// (https://earthquake.usgs.gov/fdsnws/event/1/query) queried with
// format=geojson. Each GeoJSON feature carries its fields under "properties":
//
//	mag    float, Richter-style magnitude (may be null for unreviewed events)
//	place  text, e.g. "74km NW of Rumoi, Japan"
//	time   integer, epoch milliseconds UTC
//	url    text, the event detail page
//
// # Place Format
//
//	"<distance>km <compass> of <primary>"  →  e.g. "5km N of Cairo, Egypt"
//	offset "5km N of", primary "Cairo, Egypt".
//	Places without the " of " separator (e.g. "Pacific-Antarctic Ridge") have no
//	offset; they render as "Near the" followed by the whole place.
//
// # Severity
//
// A four-level scale derived from magnitude, used for rendering:
//
//	<2.5 low | <4.5 moderate | <6.0 high | ≥6.0 critical
//
// Magnitude buckets (floor of magnitude, clamped to 1..10) select a colour
// class per row. See [MagnitudeBucket].
package domain
