package domain

import "time"

// Earthquake is one feed record. Values are never mutated after parsing; a
// successful fetch replaces the whole list.
type Earthquake struct {
	ID        string    `json:"id"`
	Magnitude float64   `json:"magnitude"`
	Place     string    `json:"place"`
	Time      time.Time `json:"time"`
	URL       string    `json:"url"`
}

// Location holds the parsed components of a USGS place string.
type Location struct {
	Raw       string  `json:"raw,omitempty"`
	Offset    string  `json:"offset"`
	Primary   string  `json:"primary"`
	Distance  float64 `json:"distance,omitempty"`
	Direction string  `json:"direction,omitempty"`
}

// Location splits the record's place into offset and primary location.
func (e Earthquake) Location() Location {
	return SplitPlace(e.Place)
}
