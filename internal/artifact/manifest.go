package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest maps the scaler and each model key to an artifact name.
type Manifest struct {
	Scaler string          `yaml:"scaler"`
	Models []ManifestEntry `yaml:"models"`
}

type ManifestEntry struct {
	Key      ModelKey `yaml:"key"`
	Artifact string   `yaml:"artifact"`
}

// DefaultManifest is used when no manifest file is present.
func DefaultManifest() Manifest {
	return Manifest{
		Scaler: "standard_scaler.json",
		Models: []ManifestEntry{
			{Key: LogisticRegression, Artifact: "lr_model.json"},
			{Key: DecisionTree, Artifact: "dt_model.json"},
			{Key: KNearestNeighbor, Artifact: "knn_model.json"},
			{Key: NaiveBayes, Artifact: "nb_model.json"},
			{Key: SupportVectorClassifier, Artifact: "sv_model.json"},
		},
	}
}

// LoadManifest reads a YAML manifest from path, falling back to
// DefaultManifest when the file does not exist.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a YAML manifest and canonicalizes its model keys.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Scaler == "" {
		return Manifest{}, errors.New("manifest: scaler artifact is required")
	}
	if len(m.Models) == 0 {
		return Manifest{}, errors.New("manifest: at least one model is required")
	}

	seen := make(map[ModelKey]bool, len(m.Models))
	for i, e := range m.Models {
		key, err := ParseModelKey(string(e.Key))
		if err != nil {
			return Manifest{}, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		if seen[key] {
			return Manifest{}, fmt.Errorf("manifest: duplicate model %q", key)
		}
		if e.Artifact == "" {
			return Manifest{}, fmt.Errorf("manifest: model %q has no artifact", key)
		}
		seen[key] = true
		m.Models[i].Key = key
	}
	return m, nil
}

// Names lists every artifact the manifest references, scaler first.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Models)+1)
	names = append(names, m.Scaler)
	for _, e := range m.Models {
		names = append(names, e.Artifact)
	}
	return names
}
