// Package settings persists user preferences across sessions.
//
// There is a single preference, the minimum magnitude, kept in
// <home>/settings.json. It is read on every load trigger, so a change takes
// effect on the next fetch only.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	fileName        = "settings.json"
	keyMinMagnitude = "min_magnitude"
)

// ErrInvalidPreference is returned when a preference value is out of range.
var ErrInvalidPreference = errors.New("invalid preference")

// Preferences is the persisted preference set.
type Preferences struct {
	MinMagnitude float64 `json:"min_magnitude" mapstructure:"min_magnitude" validate:"gte=0,lte=10"`
}

// Store is a file-backed preference store. All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	v        *viper.Viper
	path     string
	validate *validator.Validate
}

// NewStore opens the settings file under dir, creating dir if needed. A
// missing file yields defaultMinMagnitude.
func NewStore(dir string, defaultMinMagnitude float64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	path := filepath.Join(dir, fileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault(keyMinMagnitude, defaultMinMagnitude)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat settings %s: %w", path, err)
	}

	s := &Store{v: v, path: path, validate: validator.New()}

	prefs := s.Preferences()
	if err := s.validate.Struct(prefs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPreference, path, err)
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// MinMagnitude returns the current minimum-magnitude preference.
func (s *Store) MinMagnitude() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetFloat64(keyMinMagnitude)
}

// Preferences returns a snapshot of all preferences.
func (s *Store) Preferences() Preferences {
	return Preferences{MinMagnitude: s.MinMagnitude()}
}

// SetMinMagnitude validates and persists a new minimum magnitude.
func (s *Store) SetMinMagnitude(mag float64) error {
	if err := s.validate.Struct(Preferences{MinMagnitude: mag}); err != nil {
		return fmt.Errorf("%w: min_magnitude must be between 0 and 10", ErrInvalidPreference)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.v.GetFloat64(keyMinMagnitude)
	s.v.Set(keyMinMagnitude, mag)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		s.v.Set(keyMinMagnitude, prev)
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}
