package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Manifest is the subset of a package.json the scanner reads. Everything
// else in the file is ignored.
type Manifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ParseManifest decodes a package.json payload.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("scan: parse manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads and parses the manifest file at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// DependencyNames returns the declared dependency names, sorted and
// deduplicated. Dev dependencies are included only when includeDev is set.
func (m *Manifest) DependencyNames(includeDev bool) []string {
	seen := make(map[string]struct{}, len(m.Dependencies)+len(m.DevDependencies))
	for name := range m.Dependencies {
		if name != "" {
			seen[name] = struct{}{}
		}
	}
	if includeDev {
		for name := range m.DevDependencies {
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
