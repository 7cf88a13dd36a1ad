// Command validatefeed checks a saved USGS GeoJSON feed against the rules the
// list screen relies on: every feature parses, ids are unique, detail URLs are
// absolute, events are ordered newest first, and every place string splits
// into a displayable location.
//
// Usage:
//
//	curl -o feed.json 'https://earthquake.usgs.gov/fdsnws/event/1/query?format=geojson&limit=10&minmag=6&orderby=time'
//	go run ./cmd/validatefeed -feed feed.json -expect 10
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/raulserranomena/QuakeReport/internal/adapter/usgs"
	"github.com/raulserranomena/QuakeReport/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	feedPath := flag.String("feed", "", "path to a GeoJSON feed file")
	expect := flag.Int("expect", -1, "expected number of records (-1 to skip)")
	flag.Parse()

	if *feedPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*feedPath, *expect, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(feedPath string, expect int, w io.Writer) int {
	fmt.Fprintln(w, "=== USGS Feed Validation ===")
	fmt.Fprintln(w)

	data, err := os.ReadFile(feedPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: read feed: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := usgs.ParseFeed(data, logger)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateParse(res, expect),
		validateRecords(res.Earthquakes),
		validateOrdering(res.Earthquakes),
		validatePresentation(res.Earthquakes),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-30s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d parsed, %d skipped\n", len(res.Earthquakes), res.Skipped)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func validateParse(res usgs.ParseResult, expect int) *phase {
	p := &phase{name: "Feature parsing"}
	if res.Skipped > 0 {
		p.errorf("%d malformed features skipped", res.Skipped)
	}
	if expect >= 0 && len(res.Earthquakes) != expect {
		p.errorf("record count: got %d, want %d", len(res.Earthquakes), expect)
	}
	return p
}

func validateRecords(quakes []domain.Earthquake) *phase {
	p := &phase{name: "Record fields"}
	seen := make(map[string]int, len(quakes))
	for i, q := range quakes {
		if q.ID == "" {
			p.errorf("record %d: empty id", i)
		} else if prev, ok := seen[q.ID]; ok {
			p.errorf("record %d: id %s duplicates record %d", i, q.ID, prev)
		} else {
			seen[q.ID] = i
		}

		if q.Magnitude < -2 || q.Magnitude > 10 {
			p.errorf("record %d (%s): magnitude %v out of range", i, q.ID, q.Magnitude)
		}
		if q.Time.IsZero() {
			p.errorf("record %d (%s): zero time", i, q.ID)
		}
		if u, err := url.Parse(q.URL); err != nil || !u.IsAbs() {
			p.errorf("record %d (%s): detail url %q is not absolute", i, q.ID, q.URL)
		}
	}
	return p
}

func validateOrdering(quakes []domain.Earthquake) *phase {
	p := &phase{name: "Newest-first ordering"}
	for i := 1; i < len(quakes); i++ {
		if quakes[i].Time.After(quakes[i-1].Time) {
			p.errorf("record %d (%s) is newer than record %d (%s)",
				i, quakes[i].ID, i-1, quakes[i-1].ID)
		}
	}
	return p
}

func validatePresentation(quakes []domain.Earthquake) *phase {
	p := &phase{name: "Presentation"}
	for i, q := range quakes {
		loc := q.Location()
		if loc.Primary == "" {
			p.errorf("record %d (%s): place %q has no primary location", i, q.ID, q.Place)
		}
		if loc.Offset == "" {
			p.errorf("record %d (%s): place %q has no offset", i, q.ID, q.Place)
		}
	}
	return p
}
