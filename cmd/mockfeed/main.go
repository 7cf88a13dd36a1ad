// Command mockfeed serves a synthetic USGS FDSN event feed for local runs and
// demos. It honours the minmag, limit and orderby query parameters the client
// sends, so quakereport can be pointed at it with USGS_BASE_URL.
//
// Usage:
//
//	go run ./cmd/mockfeed -addr :9090 -count 40 -malformed
//	USGS_BASE_URL=http://localhost:9090/fdsnws/event/1/query quakereport list
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"
)

const queryPath = "/fdsnws/event/1/query"

var baseTime = time.Date(2016, time.January, 30, 3, 25, 12, 0, time.UTC)

var places = []string{
	"88km N of Yelizovo, Russia",
	"94km SSE of Taron, Papua New Guinea",
	"Pacific-Antarctic Ridge",
	"12km WSW of Ovalle, Chile",
	"South of the Fiji Islands",
	"27km E of Hualien City, Taiwan",
	"Mid-Indian Ridge",
	"41km SW of Jiquilillo, Nicaragua",
}

type feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	addr := flag.String("addr", ":9090", "listen address")
	count := flag.Int("count", 40, "number of synthetic events")
	malformed := flag.Bool("malformed", false, "append one feature without a magnitude")
	out := flag.String("out", "", "write the full feed to this file and exit")
	flag.Parse()

	if *count < 0 {
		return fmt.Errorf("count must not be negative: %d", *count)
	}

	events := generate(*count, *malformed)

	if *out != "" {
		return writeJSON(*out, featureCollection{Type: "FeatureCollection", Features: events})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+queryPath, queryHandler(events))

	log.Printf("serving %d events on %s%s", len(events), *addr, queryPath)
	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

// generate builds n deterministic events, newest first, one hour apart.
func generate(n int, malformed bool) []feature {
	events := make([]feature, 0, n+1)
	for i := range n {
		id := fmt.Sprintf("mock%05d", i)
		mag := 2.0 + float64((i*37)%70)/10
		events = append(events, feature{
			Type: "Feature",
			ID:   id,
			Properties: map[string]any{
				"mag":   mag,
				"place": places[i%len(places)],
				"time":  baseTime.Add(-time.Duration(i) * time.Hour).UnixMilli(),
				"url":   "https://earthquake.usgs.gov/earthquakes/eventpage/" + id,
			},
		})
	}
	if malformed {
		events = append(events, feature{
			Type: "Feature",
			ID:   "mockbad",
			Properties: map[string]any{
				"mag":   nil,
				"place": "Unknown",
				"time":  baseTime.UnixMilli(),
				"url":   "https://earthquake.usgs.gov/earthquakes/eventpage/mockbad",
			},
		})
	}
	return events
}

// filter applies the minmag, orderby and limit parameters of a feed query.
// Features without a numeric magnitude always pass the magnitude filter.
func filter(events []feature, minMag float64, limit int, orderBy string) []feature {
	out := make([]feature, 0, len(events))
	for _, e := range events {
		if m, ok := e.Properties["mag"].(float64); ok && m < minMag {
			continue
		}
		out = append(out, e)
	}

	if orderBy == "time" {
		sort.SliceStable(out, func(i, j int) bool {
			ti, _ := out[i].Properties["time"].(int64)
			tj, _ := out[j].Properties["time"].(int64)
			return ti > tj
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func queryHandler(events []feature) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if f := q.Get("format"); f != "" && f != "geojson" {
			http.Error(w, "unsupported format: "+f, http.StatusBadRequest)
			return
		}

		minMag, err := parseFloat(q.Get("minmag"))
		if err != nil {
			http.Error(w, "bad minmag", http.StatusBadRequest)
			return
		}
		limit, err := parseInt(q.Get("limit"))
		if err != nil || limit < 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(featureCollection{ //nolint:errcheck // best-effort mock response
			Type:     "FeatureCollection",
			Features: filter(events, minMag, limit, q.Get("orderby")),
		})
	}
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	log.Printf("wrote %s", path)
	return nil
}
