package revisions

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/analysis"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func metadataTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "revision_metadata",
				Description: "Get commit metadata for one revision of an ArgoCD application: author, date, first line of the message, tags and signature verification outcome.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"revision": {
							Type:        "string",
							Description: "Revision (commit hash) to inspect",
						},
						"source_index": {
							Type:        "integer",
							Description: "Source index for multi-source applications",
						},
						"version_id": {
							Type:        "integer",
							Description: "Version ID for multi-source applications",
						},
						"app_namespace": {
							Type:        "string",
							Description: "Application namespace",
						},
						"project": {
							Type:        "string",
							Description: "ArgoCD project",
						},
					},
					Required: []string{"application", "revision"},
				},
			},
			Handler: revisionMetadata,
		},
	}
}

func revisionMetadata(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	revision := params.GetString("revision", "")
	if application == "" || revision == "" {
		return api.NewToolCallResult("", errors.New("application and revision are required")), nil
	}

	opts := argocd.RevisionMetadataOptions{
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	}
	if idx := params.GetInt("source_index", -1); idx >= 0 {
		v := int32(idx)
		opts.SourceIndex = &v
	}
	if id := params.GetInt("version_id", -1); id >= 0 {
		v := int32(id)
		opts.VersionID = &v
	}

	meta, err := params.ArgoCDProvider.GetRevisionMetadata(params.Context, application, revision, opts)
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get revision metadata for %s@%s", application, analysis.ShortRevision(revision))), nil
	}

	summary := analysis.SummarizeRevision(revision, meta.Author, meta.Date, meta.Message, meta.Tags, meta.SignatureInfo)

	output := fmt.Sprintf("Revision Metadata: %s @ %s\n", application, summary.ShortRevision)
	output += strings.Repeat("=", 80) + "\n\n"
	if summary.Author != "" {
		output += fmt.Sprintf("Author: %s\n", summary.Author)
	}
	if summary.Date != "" {
		output += fmt.Sprintf("Date: %s\n", summary.Date)
	}
	if summary.Message != "" {
		output += fmt.Sprintf("Message: %s\n", summary.Message)
	}
	output += fmt.Sprintf("Signature: %s\n", summary.Signature)
	if summary.TagCount > 0 {
		output += fmt.Sprintf("Tags (%d): %s\n", summary.TagCount, strings.Join(summary.Tags, ", "))
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
