package manifest

import (
	"fmt"
	"path/filepath"
)

// Manifest is a loaded memora manifest.
type Manifest struct {
	// CacheRootDir is the root directory of the build artifact cache. It is
	// either absolute or relative to the root of the git repository.
	CacheRootDir string

	// Artifacts in declaration order. Names are unique.
	Artifacts []Artifact

	// DisableEnvVar names an environment variable that, when set, disables
	// the cache. Empty if the manifest does not declare one.
	DisableEnvVar string
}

// Artifact is one cacheable unit of a manifest.
type Artifact struct {
	Name    string
	Inputs  []string
	Outputs []string
}

// Validate checks the invariants every loaded manifest satisfies
func (m *Manifest) Validate() error {
	if m.CacheRootDir == "" {
		return missingField("cache_root_dir")
	}
	seen := make(map[string]int, len(m.Artifacts))
	for i, a := range m.Artifacts {
		if a.Name == "" {
			return fmt.Errorf("artifact %d: %w", i, ErrEmptyName)
		}
		if j, ok := seen[a.Name]; ok {
			return fmt.Errorf("%w: %q declared as artifact %d and %d", ErrDuplicateArtifact, a.Name, j, i)
		}
		seen[a.Name] = i
	}
	return nil
}

// Artifact returns the artifact with the given name
func (m *Manifest) Artifact(name string) (*Artifact, bool) {
	for i := range m.Artifacts {
		if m.Artifacts[i].Name == name {
			return &m.Artifacts[i], true
		}
	}
	return nil, false
}

// Names returns the artifact names in declaration order
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Artifacts))
	for i, a := range m.Artifacts {
		names[i] = a.Name
	}
	return names
}

// ResolveCacheRoot returns the cache root as an absolute path, joining a
// relative CacheRootDir onto base.
func (m *Manifest) ResolveCacheRoot(base string) string {
	if filepath.IsAbs(m.CacheRootDir) {
		return filepath.Clean(m.CacheRootDir)
	}
	return filepath.Join(base, m.CacheRootDir)
}
