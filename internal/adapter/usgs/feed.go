package usgs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raulserranomena/QuakeReport/internal/domain"
)

// ParseResult is the outcome of parsing one feed body.
type ParseResult struct {
	Earthquakes []domain.Earthquake
	Skipped     int
}

// ParseFeed decodes a GeoJSON FeatureCollection into earthquake records.
// Features that fail to decode or lack required fields are logged and skipped;
// only a body that is not a feature collection fails the batch.
func ParseFeed(data []byte, logger *slog.Logger) (ParseResult, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return ParseResult{}, fmt.Errorf("parse feed: %w", err)
	}
	if fc.Features == nil {
		return ParseResult{}, errors.New("parse feed: missing features array")
	}

	res := ParseResult{Earthquakes: make([]domain.Earthquake, 0, len(*fc.Features))}
	for i, rawFeature := range *fc.Features {
		eq, err := parseFeature(rawFeature)
		if err != nil {
			logger.Warn("skipping malformed feature", "index", i, "error", err)
			res.Skipped++
			continue
		}
		res.Earthquakes = append(res.Earthquakes, eq)
	}
	return res, nil
}

func parseFeature(data json.RawMessage) (domain.Earthquake, error) {
	var f feature
	if err := json.Unmarshal(data, &f); err != nil {
		return domain.Earthquake{}, fmt.Errorf("decode feature: %w", err)
	}

	p := f.Properties
	switch {
	case p.Mag == nil:
		return domain.Earthquake{}, fmt.Errorf("feature %q: missing mag", f.ID)
	case p.Place == nil:
		return domain.Earthquake{}, fmt.Errorf("feature %q: missing place", f.ID)
	case p.Time == nil:
		return domain.Earthquake{}, fmt.Errorf("feature %q: missing time", f.ID)
	case strings.TrimSpace(p.URL) == "":
		return domain.Earthquake{}, fmt.Errorf("feature %q: missing url", f.ID)
	}

	return domain.Earthquake{
		ID:        f.ID,
		Magnitude: *p.Mag,
		Place:     *p.Place,
		Time:      time.UnixMilli(*p.Time).UTC(),
		URL:       p.URL,
	}, nil
}

// USGS GeoJSON wire types.

type featureCollection struct {
	Type     string             `json:"type"`
	Features *[]json.RawMessage `json:"features"`
}

type feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  *int64   `json:"time"` // epoch milliseconds
	URL   string   `json:"url"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}
