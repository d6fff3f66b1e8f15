package manifest

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// rawManifest mirrors the manifest document. Pointers tell absent keys apart
// from empty ones.
type rawManifest struct {
	CacheRootDir  *string       `yaml:"cache_root_dir"`
	Artifacts     *artifactList `yaml:"artifacts"`
	DisableEnvVar *string       `yaml:"disable_env_var"`
}

type rawArtifact struct {
	Inputs  *[]string `yaml:"inputs" toml:"inputs"`
	Outputs *[]string `yaml:"outputs" toml:"outputs"`
}

type namedArtifact struct {
	name string
	def  rawArtifact
}

// artifactList is the artifacts mapping kept as ordered pairs.
type artifactList []namedArtifact

// UnmarshalYAML walks the mapping node pair by pair so declaration order and
// repeated keys both survive decoding.
func (l *artifactList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: artifacts must be a mapping of name to definition", node.Line)
	}
	list := make(artifactList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var name string
		if err := key.Decode(&name); err != nil {
			return fmt.Errorf("line %d: artifact name: %w", key.Line, err)
		}
		var def rawArtifact
		if err := value.Decode(&def); err != nil {
			return fmt.Errorf("artifact %q: %w", name, err)
		}
		list = append(list, namedArtifact{name: name, def: def})
	}
	*l = list
	return nil
}

func decodeYAML(data []byte) (*rawManifest, error) {
	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// decodeTOML reads a TOML manifest. Tables carry no order once decoded into a
// map, so the order is recovered from the key metadata.
func decodeTOML(data []byte) (*rawManifest, error) {
	var doc struct {
		CacheRootDir  *string                `toml:"cache_root_dir"`
		Artifacts     map[string]rawArtifact `toml:"artifacts"`
		DisableEnvVar *string                `toml:"disable_env_var"`
	}
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		return nil, err
	}

	raw := &rawManifest{
		CacheRootDir:  doc.CacheRootDir,
		DisableEnvVar: doc.DisableEnvVar,
	}
	if md.IsDefined("artifacts") {
		// Dotted keys such as artifacts.build.inputs may appear without a
		// key for the artifact table itself; the first key under a name fixes
		// its position. TOML rejects redefined tables while parsing.
		list := make(artifactList, 0, len(doc.Artifacts))
		seen := make(map[string]bool, len(doc.Artifacts))
		for _, key := range md.Keys() {
			if len(key) < 2 || key[0] != "artifacts" || seen[key[1]] {
				continue
			}
			seen[key[1]] = true
			list = append(list, namedArtifact{name: key[1], def: doc.Artifacts[key[1]]})
		}
		raw.Artifacts = &list
	}
	return raw, nil
}

// build turns the raw document into a Manifest and appends path to the
// inputs of every artifact.
func (raw *rawManifest) build(path string) (*Manifest, error) {
	if raw.CacheRootDir == nil {
		return nil, missingField("cache_root_dir")
	}
	if raw.Artifacts == nil {
		return nil, missingField("artifacts")
	}

	m := &Manifest{
		CacheRootDir: *raw.CacheRootDir,
		Artifacts:    make([]Artifact, 0, len(*raw.Artifacts)),
	}
	if raw.DisableEnvVar != nil {
		m.DisableEnvVar = *raw.DisableEnvVar
	}

	for _, na := range *raw.Artifacts {
		if na.def.Inputs == nil {
			return nil, missingField("artifacts." + na.name + ".inputs")
		}
		if na.def.Outputs == nil {
			return nil, missingField("artifacts." + na.name + ".outputs")
		}
		m.Artifacts = append(m.Artifacts, Artifact{
			Name:    na.name,
			Inputs:  slices.Clone(*na.def.Inputs),
			Outputs: slices.Clone(*na.def.Outputs),
		})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	for i := range m.Artifacts {
		m.Artifacts[i].Inputs = append(m.Artifacts[i].Inputs, path)
	}
	return m, nil
}
