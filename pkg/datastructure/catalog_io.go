package datastructure

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadDestinations reads a destination catalog dump from a json file. the
// catalog itself is owned by the backing store; this is only the read side
// the planner needs.
func LoadDestinations(path string) ([]Destination, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read destination catalog: %w", err)
	}

	var dests []Destination
	if err := json.Unmarshal(buf, &dests); err != nil {
		return nil, fmt.Errorf("parse destination catalog: %w", err)
	}

	seen := make(map[int64]struct{}, len(dests))
	for _, d := range dests {
		if _, ok := seen[d.Id]; ok {
			return nil, fmt.Errorf("duplicate destination id %d in catalog", d.Id)
		}
		seen[d.Id] = struct{}{}

		if !d.Coordinate.Valid() {
			return nil, fmt.Errorf("destination %d (%s) has invalid coordinate", d.Id, d.Name)
		}
	}

	return dests, nil
}
