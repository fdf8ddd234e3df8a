package argocd

// Typed models for the slice of the ArgoCD REST API this server consumes.
// Every field the API may omit is either a pointer or carries omitempty so
// that absence never turns into a parse failure.

// Application is an ArgoCD application resource.
type Application struct {
	Metadata *ObjectMeta        `json:"metadata,omitempty"`
	Spec     *ApplicationSpec   `json:"spec,omitempty"`
	Status   *ApplicationStatus `json:"status,omitempty"`
}

// ObjectMeta carries the subset of Kubernetes object metadata the API returns.
type ObjectMeta struct {
	Name              string            `json:"name"`
	Namespace         string            `json:"namespace,omitempty"`
	Labels            map[string]string `json:"labels,omitempty"`
	Annotations       map[string]string `json:"annotations,omitempty"`
	CreationTimestamp string            `json:"creationTimestamp,omitempty"`
}

// ApplicationSpec describes where an application comes from and where it deploys.
type ApplicationSpec struct {
	Source      *ApplicationSource      `json:"source,omitempty"`
	Destination *ApplicationDestination `json:"destination,omitempty"`
	Project     string                  `json:"project,omitempty"`
	SyncPolicy  *SyncPolicy             `json:"syncPolicy,omitempty"`
}

// ApplicationSource is a reference to the repo/path/chart an application tracks.
type ApplicationSource struct {
	RepoURL        string `json:"repoURL"`
	Path           string `json:"path,omitempty"`
	TargetRevision string `json:"targetRevision,omitempty"`
	Chart          string `json:"chart,omitempty"`
}

// ApplicationDestination identifies the target cluster and namespace.
type ApplicationDestination struct {
	Server    string `json:"server,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name,omitempty"`
}

// SyncPolicy holds the application's sync policy configuration.
type SyncPolicy struct {
	Automated *AutomatedSyncPolicy `json:"automated,omitempty"`
}

// AutomatedSyncPolicy holds automated sync options.
type AutomatedSyncPolicy struct {
	Prune    *bool `json:"prune,omitempty"`
	SelfHeal *bool `json:"selfHeal,omitempty"`
}

// ApplicationStatus is the observed state of an application.
type ApplicationStatus struct {
	Health  *HealthStatus     `json:"health,omitempty"`
	Sync    *SyncStatusInfo   `json:"sync,omitempty"`
	Summary *StatusSummary    `json:"summary,omitempty"`
	History []RevisionHistory `json:"history,omitempty"`
}

// HealthStatus is the aggregated health of a resource or application.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SyncStatusInfo is the sync comparison state of an application.
type SyncStatusInfo struct {
	Status   string `json:"status"`
	Revision string `json:"revision,omitempty"`
}

// StatusSummary lists external URLs and container images in use.
type StatusSummary struct {
	ExternalURLs []string `json:"externalURLs,omitempty"`
	Images       []string `json:"images,omitempty"`
}

// ApplicationList is the applications list response.
type ApplicationList struct {
	Items []Application `json:"items"`
}

// ResourceRef uniquely identifies a Kubernetes resource within the tree.
type ResourceRef struct {
	Group     string `json:"group,omitempty"`
	Version   string `json:"version,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name,omitempty"`
	UID       string `json:"uid,omitempty"`
}

// ResourceNode is one live resource in an application's managed hierarchy.
type ResourceNode struct {
	ResourceRef
	ParentRefs      []ResourceRef `json:"parentRefs,omitempty"`
	ResourceVersion string        `json:"resourceVersion,omitempty"`
	Images          []string      `json:"images,omitempty"`
	Health          *HealthStatus `json:"health,omitempty"`
	CreatedAt       string        `json:"createdAt,omitempty"`
}

// ApplicationTree holds the managed and orphaned resource nodes of an application.
type ApplicationTree struct {
	Nodes         []ResourceNode `json:"nodes"`
	OrphanedNodes []ResourceNode `json:"orphanedNodes,omitempty"`
}

// ResourceDiff is the per-resource result of a server-side diff calculation.
type ResourceDiff struct {
	Group               string `json:"group,omitempty"`
	Kind                string `json:"kind,omitempty"`
	Namespace           string `json:"namespace,omitempty"`
	Name                string `json:"name,omitempty"`
	LiveState           string `json:"liveState,omitempty"`
	TargetState         string `json:"targetState,omitempty"`
	NormalizedLiveState string `json:"normalizedLiveState,omitempty"`
	PredictedLiveState  string `json:"predictedLiveState,omitempty"`
	Modified            *bool  `json:"modified,omitempty"`
	Hook                *bool  `json:"hook,omitempty"`
}

// ServerSideDiffResponse is the server-side diff endpoint response.
type ServerSideDiffResponse struct {
	Items    []ResourceDiff `json:"items"`
	Modified bool           `json:"modified"`
}

// Event is a Kubernetes event record as returned by the events endpoint.
type Event struct {
	Metadata           *ObjectMeta      `json:"metadata,omitempty"`
	InvolvedObject     *ObjectReference `json:"involvedObject,omitempty"`
	Reason             string           `json:"reason,omitempty"`
	Message            string           `json:"message,omitempty"`
	Source             *EventSource     `json:"source,omitempty"`
	FirstTimestamp     string           `json:"firstTimestamp,omitempty"`
	LastTimestamp      string           `json:"lastTimestamp,omitempty"`
	Count              *int32           `json:"count,omitempty"`
	Type               string           `json:"type,omitempty"`
	ReportingComponent string           `json:"reportingComponent,omitempty"`
}

// EventList is the events endpoint response.
type EventList struct {
	Items []Event `json:"items"`
}

// ObjectReference points at the object an event is about.
type ObjectReference struct {
	Kind       string `json:"kind,omitempty"`
	Namespace  string `json:"namespace,omitempty"`
	Name       string `json:"name,omitempty"`
	UID        string `json:"uid,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
	FieldPath  string `json:"fieldPath,omitempty"`
}

// EventSource identifies the component that emitted an event.
type EventSource struct {
	Component string `json:"component,omitempty"`
	Host      string `json:"host,omitempty"`
}

// LogEntry is a single log line from the pod logs NDJSON stream.
type LogEntry struct {
	Content      string `json:"content,omitempty"`
	Last         *bool  `json:"last,omitempty"`
	PodName      string `json:"podName,omitempty"`
	TimeStamp    string `json:"timeStamp,omitempty"`
	TimeStampStr string `json:"timeStampStr,omitempty"`
}

// Timestamp returns the display timestamp, preferring the string form.
func (e LogEntry) Timestamp() string {
	if e.TimeStampStr != "" {
		return e.TimeStampStr
	}
	return e.TimeStamp
}

// ManifestResponse contains rendered application manifests and source metadata.
type ManifestResponse struct {
	Manifests    []string `json:"manifests,omitempty"`
	Namespace    string   `json:"namespace,omitempty"`
	Revision     string   `json:"revision,omitempty"`
	Server       string   `json:"server,omitempty"`
	SourceType   string   `json:"sourceType,omitempty"`
	Commands     []string `json:"commands,omitempty"`
	VerifyResult string   `json:"verifyResult,omitempty"`
}

// RevisionMetadata is commit metadata for one revision of an application source.
type RevisionMetadata struct {
	Author        string   `json:"author,omitempty"`
	Date          string   `json:"date,omitempty"`
	Message       string   `json:"message,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	SignatureInfo string   `json:"signatureInfo,omitempty"`
}

// RevisionHistory is one past deployment of an application.
type RevisionHistory struct {
	ID              int64               `json:"id"`
	Revision        string              `json:"revision,omitempty"`
	DeployedAt      string              `json:"deployedAt,omitempty"`
	DeployStartedAt string              `json:"deployStartedAt,omitempty"`
	Source          *ApplicationSource  `json:"source,omitempty"`
	Sources         []ApplicationSource `json:"sources,omitempty"`
	Revisions       []string            `json:"revisions,omitempty"`
	InitiatedBy     *OperationInitiator `json:"initiatedBy,omitempty"`
}

// OperationInitiator records who (or what) started an operation.
type OperationInitiator struct {
	Username  string `json:"username,omitempty"`
	Automated bool   `json:"automated,omitempty"`
}

// SyncWindow is one allow/deny window controlling when syncs may run.
type SyncWindow struct {
	Kind              string   `json:"kind,omitempty"`
	Schedule          string   `json:"schedule,omitempty"`
	Duration          string   `json:"duration,omitempty"`
	Applications      []string `json:"applications,omitempty"`
	Namespaces        []string `json:"namespaces,omitempty"`
	Clusters          []string `json:"clusters,omitempty"`
	ManualSyncEnabled *bool    `json:"manualSyncEnabled,omitempty"`
	StartTime         string   `json:"startTime,omitempty"`
	EndTime           string   `json:"endTime,omitempty"`
}

// SyncWindowsResponse is the sync windows endpoint response.
type SyncWindowsResponse struct {
	Windows []SyncWindow `json:"windows"`
}

// ResourceResponse wraps a single resource manifest returned by the resource endpoint.
type ResourceResponse struct {
	Manifest string `json:"manifest,omitempty"`
}

// SyncStrategy selects how a sync applies manifests.
type SyncStrategy struct {
	Apply *SyncStrategyApply `json:"apply,omitempty"`
	Hook  *SyncStrategyHook  `json:"hook,omitempty"`
}

// SyncStrategyApply holds apply strategy options.
type SyncStrategyApply struct {
	Force *bool `json:"force,omitempty"`
}

// SyncStrategyHook holds hook strategy options.
type SyncStrategyHook struct {
	Force *bool `json:"force,omitempty"`
}

// SyncResource selects a specific resource within a sync request.
type SyncResource struct {
	Group     string `json:"group,omitempty"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// RetryStrategy is the caller-supplied retry policy for sync operations.
type RetryStrategy struct {
	Limit   *int64   `json:"limit,omitempty"`
	Backoff *Backoff `json:"backoff,omitempty"`
}

// Backoff controls how retry delays grow.
type Backoff struct {
	Duration    string `json:"duration,omitempty"`
	MaxDuration string `json:"maxDuration,omitempty"`
	Factor      *int64 `json:"factor,omitempty"`
}

// SyncRequest is the body of a sync operation.
type SyncRequest struct {
	Name         string         `json:"name"`
	Revision     string         `json:"revision,omitempty"`
	DryRun       *bool          `json:"dryRun,omitempty"`
	Prune        *bool          `json:"prune,omitempty"`
	Strategy     *SyncStrategy  `json:"strategy,omitempty"`
	Resources    []SyncResource `json:"resources,omitempty"`
	Manifests    []string       `json:"manifests,omitempty"`
	SyncOptions  []string       `json:"syncOptions,omitempty"`
	Retry        *RetryStrategy `json:"retry,omitempty"`
	AppNamespace string         `json:"appNamespace,omitempty"`
	Project      string         `json:"project,omitempty"`
}

// RollbackRequest is the body of a rollback operation.
type RollbackRequest struct {
	Name         string `json:"name"`
	ID           int64  `json:"id"`
	DryRun       *bool  `json:"dryRun,omitempty"`
	Prune        *bool  `json:"prune,omitempty"`
	AppNamespace string `json:"appNamespace,omitempty"`
	Project      string `json:"project,omitempty"`
}
