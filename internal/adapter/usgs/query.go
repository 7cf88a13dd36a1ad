package usgs

import (
	"fmt"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the USGS FDSN event query endpoint.
const DefaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// OrderByTime sorts the feed newest first.
const OrderByTime = "time"

// Query holds the user-controlled parameters of a feed request.
type Query struct {
	MinMagnitude float64
	Limit        int
	OrderBy      string
}

// BuildURL appends the feed query parameters to base. Existing query
// parameters on base are kept unless overridden.
func BuildURL(base string, q Query) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse base url: %q is not absolute", base)
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = OrderByTime
	}

	params := u.Query()
	params.Set("format", "geojson")
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("minmag", strconv.FormatFloat(q.MinMagnitude, 'f', -1, 64))
	params.Set("orderby", orderBy)
	u.RawQuery = params.Encode()

	return u.String(), nil
}
