package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`{
		"name": "my-app",
		"version": "1.0.0",
		"dependencies": {"express": "^4.18.0", "lodash": "^4.17.21"},
		"devDependencies": {"jest": "^29.0.0", "lodash": "^4.17.21"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "my-app", m.Name)
	assert.Len(t, m.Dependencies, 2)
	assert.Len(t, m.DevDependencies, 2)
}

func TestParseManifest_Malformed(t *testing.T) {
	_, err := ParseManifest([]byte(`{"dependencies": [`))
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dependencies": {"react": "^18.0.0"}}`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, m.DependencyNames(false))
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "package.json"))
	assert.Error(t, err)
}

func TestDependencyNames(t *testing.T) {
	m := &Manifest{
		Dependencies:    map[string]string{"zulu": "1", "alpha": "2", "mike": "3"},
		DevDependencies: map[string]string{"jest": "29", "alpha": "2"},
	}

	// Sorted, production only.
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, m.DependencyNames(false))

	// Dev included and deduplicated against production.
	assert.Equal(t, []string{"alpha", "jest", "mike", "zulu"}, m.DependencyNames(true))
}

func TestDependencyNames_Empty(t *testing.T) {
	m := &Manifest{}
	assert.Empty(t, m.DependencyNames(true))
}
