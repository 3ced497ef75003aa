package network

import (
	"errors"
	"fmt"
	"os"
	"time"

	"howett.net/plist"
)

// KnownNetwork is one network the OS remembers joining.
type KnownNetwork struct {
	SSID          string
	LastConnected time.Time
}

// Source lists previously joined networks.
type Source interface {
	KnownNetworks() ([]KnownNetwork, error)
}

// ErrSourceUnavailable is returned when the known-networks file is missing.
var ErrSourceUnavailable = errors.New("known networks unavailable")

// PlistSource reads the airport preferences plist (binary or XML).
type PlistSource struct {
	Path string
}

// NewPlistSource returns a Source reading path.
func NewPlistSource(path string) *PlistSource {
	return &PlistSource{Path: path}
}

type airportPreferences struct {
	KnownNetworks map[string]knownNetworkEntry `plist:"KnownNetworks"`
}

type knownNetworkEntry struct {
	SSIDString    string    `plist:"SSIDString"`
	LastConnected time.Time `plist:"LastConnected"`
}

// KnownNetworks returns every remembered network that has been joined at
// least once. When an SSID appears more than once the newest entry wins.
func (s *PlistSource) KnownNetworks() ([]KnownNetwork, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read known networks: %w", err)
	}

	var prefs airportPreferences
	if _, err := plist.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse known networks %s: %w", s.Path, err)
	}

	newest := make(map[string]time.Time, len(prefs.KnownNetworks))
	for _, entry := range prefs.KnownNetworks {
		if entry.SSIDString == "" || entry.LastConnected.IsZero() {
			continue
		}
		if prev, ok := newest[entry.SSIDString]; ok && !entry.LastConnected.After(prev) {
			continue
		}
		newest[entry.SSIDString] = entry.LastConnected
	}

	out := make([]KnownNetwork, 0, len(newest))
	for ssid, at := range newest {
		out = append(out, KnownNetwork{SSID: ssid, LastConnected: at})
	}
	return out, nil
}
