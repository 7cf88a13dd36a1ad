package usgs

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	raw, err := BuildURL(DefaultBaseURL, Query{MinMagnitude: 4.5, Limit: 10})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "earthquake.usgs.gov", u.Host)
	assert.Equal(t, "/fdsnws/event/1/query", u.Path)
	assert.Equal(t, url.Values{
		"format":  {"geojson"},
		"limit":   {"10"},
		"minmag":  {"4.5"},
		"orderby": {"time"},
	}, u.Query())
}

func TestBuildURL_WholeMagnitude(t *testing.T) {
	raw, err := BuildURL(DefaultBaseURL, Query{MinMagnitude: 6, Limit: 10, OrderBy: OrderByTime})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "6", u.Query().Get("minmag"))
}

func TestBuildURL_InvalidBase(t *testing.T) {
	_, err := BuildURL("not a url", Query{Limit: 10})
	require.Error(t, err)

	_, err = BuildURL("://bad", Query{Limit: 10})
	require.Error(t, err)
}
