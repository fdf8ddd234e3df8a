package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deploymentYAML = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  namespace: prod
spec:
  replicas: 2
`

const serviceJSON = `{"apiVersion":"v1","kind":"Service","metadata":{"name":"web","namespace":"prod"}}`

func TestSummarizeManifests(t *testing.T) {
	summary := SummarizeManifests([]string{deploymentYAML, serviceJSON}, "0123456789abcdef", "Helm")

	assert.Equal(t, 2, summary.TotalCount)
	assert.Equal(t, "Helm", summary.SourceType)
	assert.Equal(t, map[string]int{"Deployment": 1, "Service": 1}, summary.CountsByKind)

	require.Len(t, summary.Manifests, 2)
	assert.Equal(t, "Deployment", summary.Manifests[0].Kind)
	assert.Equal(t, "web", summary.Manifests[0].Name)
	assert.Equal(t, "prod", summary.Manifests[0].Namespace)
	// ArgoCD returns manifests as JSON strings; yaml.v3 parses those too.
	assert.Equal(t, "Service", summary.Manifests[1].Kind)
	assert.Equal(t, "v1", summary.Manifests[1].APIVersion)
}

func TestSummarizeManifestsUnparsableKept(t *testing.T) {
	summary := SummarizeManifests([]string{"{not valid", deploymentYAML}, "", "")

	assert.Equal(t, 2, summary.TotalCount)
	assert.Equal(t, map[string]int{"Unknown": 1, "Deployment": 1}, summary.CountsByKind)
	assert.Empty(t, summary.Manifests[0].Kind)
}

func TestSummarizeManifestsEmptyInput(t *testing.T) {
	summary := SummarizeManifests(nil, "", "")

	assert.Equal(t, 0, summary.TotalCount)
	assert.Empty(t, summary.Manifests)
	assert.Empty(t, summary.CountsByKind)
}
