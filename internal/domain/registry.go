package domain

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// stationSeed is the bundled station dataset. It can be overridden at
// startup with REGISTRY_PATH; the records themselves are provided
// read-only data, not something this service authors.
//
//go:embed stations.json
var stationSeed []byte

// Registry is the read-only collection of jurisdiction records. It is
// loaded once at startup and never mutated afterwards, so it is safe
// to share across requests without locking.
type Registry struct {
	stations []Station
}

// LoadRegistry parses a JSON array of stations from r and validates
// the registry invariants: unique ids, valid coordinates, and at
// least one contact number per station. Any violation fails the load.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var stations []Station
	if err := json.NewDecoder(r).Decode(&stations); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return NewRegistry(stations)
}

// NewRegistry validates an already-decoded station list and wraps it
// in a Registry.
func NewRegistry(stations []Station) (*Registry, error) {
	seen := make(map[string]struct{}, len(stations))
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid registry: %w", err)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("invalid registry: duplicate station id %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return &Registry{stations: stations}, nil
}

// LoadRegistryFile loads and validates a registry from a JSON file.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry file: %w", err)
	}
	defer f.Close()
	return LoadRegistry(f)
}

// EmbeddedRegistry loads the bundled station dataset.
func EmbeddedRegistry() (*Registry, error) {
	return LoadRegistry(bytes.NewReader(stationSeed))
}

// All returns a copy of the station list in registry order. Callers
// may reorder or truncate the copy freely.
func (r *Registry) All() []Station {
	out := make([]Station, len(r.stations))
	copy(out, r.stations)
	return out
}

// Len returns the number of stations in the registry.
func (r *Registry) Len() int {
	return len(r.stations)
}
