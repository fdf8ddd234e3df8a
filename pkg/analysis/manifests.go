package analysis

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ParsedManifest is the identifying header of one rendered manifest.
type ParsedManifest struct {
	APIVersion string `json:"apiVersion,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Namespace  string `json:"namespace,omitempty"`
	Name       string `json:"name,omitempty"`
}

// ManifestSummary is the bounded report over rendered manifests.
type ManifestSummary struct {
	TotalCount   int              `json:"totalCount"`
	Revision     string           `json:"revision,omitempty"`
	SourceType   string           `json:"sourceType,omitempty"`
	CountsByKind map[string]int   `json:"countsByKind"`
	Manifests    []ParsedManifest `json:"manifests"`
}

// manifestHeader matches only the identifying fields of a manifest.
// ArgoCD returns manifests as JSON strings, which yaml.v3 also parses.
type manifestHeader struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name      string `yaml:"name"`
		Namespace string `yaml:"namespace"`
	} `yaml:"metadata"`
}

// SummarizeManifests parses the header of each rendered manifest and
// builds a kind histogram. A manifest that fails to parse is kept with an
// empty header rather than failing the whole summary, since the manifest
// body itself is opaque content here.
func SummarizeManifests(manifests []string, revision, sourceType string) ManifestSummary {
	parsed := lo.Map(manifests, func(m string, _ int) ParsedManifest {
		var header manifestHeader
		if err := yaml.Unmarshal([]byte(m), &header); err != nil {
			return ParsedManifest{}
		}
		return ParsedManifest{
			APIVersion: header.APIVersion,
			Kind:       header.Kind,
			Namespace:  header.Metadata.Namespace,
			Name:       header.Metadata.Name,
		}
	})

	return ManifestSummary{
		TotalCount: len(parsed),
		Revision:   revision,
		SourceType: sourceType,
		CountsByKind: lo.CountValuesBy(parsed, func(m ParsedManifest) string {
			if m.Kind == "" {
				return "Unknown"
			}
			return m.Kind
		}),
		Manifests: parsed,
	}
}
