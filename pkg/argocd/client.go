package argocd

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 30 * time.Second

// Config is the immutable upstream connection configuration, built once at
// process start.
type Config struct {
	BaseURL     string
	AccessToken string
	Insecure    bool
	Timeout     time.Duration
}

// Client issues authenticated calls against the ArgoCD REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient validates the configuration and builds a client.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("access token cannot be empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport
	if cfg.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}, nil
}

// ApplicationListOptions filter the applications list endpoint.
type ApplicationListOptions struct {
	Name         string
	Projects     []string
	Selector     string
	Repo         string
	AppNamespace string
}

func (o ApplicationListOptions) values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "name", o.Name)
	for _, p := range o.Projects {
		v.Add("projects", p)
	}
	setNonEmpty(v, "selector", o.Selector)
	setNonEmpty(v, "repo", o.Repo)
	setNonEmpty(v, "appNamespace", o.AppNamespace)
	return v
}

// ListApplications returns applications matching the filters.
func (c *Client) ListApplications(ctx context.Context, opts ApplicationListOptions) (*ApplicationList, error) {
	var list ApplicationList
	if err := c.get(ctx, "/api/v1/applications", opts.values(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetApplicationOptions scope a single-application fetch.
type GetApplicationOptions struct {
	AppNamespace    string
	Project         string
	Refresh         string
	ResourceVersion string
}

// GetApplication fetches a single application by name. Refresh may be
// "normal" or "hard" to force a comparison against the repository.
func (c *Client) GetApplication(ctx context.Context, name string, opts GetApplicationOptions) (*Application, error) {
	v := url.Values{}
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)
	setNonEmpty(v, "refresh", opts.Refresh)
	setNonEmpty(v, "resourceVersion", opts.ResourceVersion)

	var app Application
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(name), v, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ResourceTreeOptions filter the resource tree endpoint.
type ResourceTreeOptions struct {
	Namespace    string
	Name         string
	Version      string
	Group        string
	Kind         string
	AppNamespace string
	Project      string
}

// ResourceTree fetches the managed resource hierarchy of an application.
func (c *Client) ResourceTree(ctx context.Context, appName string, opts ResourceTreeOptions) (*ApplicationTree, error) {
	v := url.Values{}
	setNonEmpty(v, "namespace", opts.Namespace)
	setNonEmpty(v, "name", opts.Name)
	setNonEmpty(v, "version", opts.Version)
	setNonEmpty(v, "group", opts.Group)
	setNonEmpty(v, "kind", opts.Kind)
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)

	var tree ApplicationTree
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/resource-tree", v, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ServerSideDiffOptions scope a server-side diff calculation.
type ServerSideDiffOptions struct {
	AppNamespace    string
	Project         string
	TargetManifests []string
}

// ServerSideDiff runs a dry-run apply and returns per-resource diff records.
func (c *Client) ServerSideDiff(ctx context.Context, appName string, opts ServerSideDiffOptions) (*ServerSideDiffResponse, error) {
	v := url.Values{}
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)
	for _, m := range opts.TargetManifests {
		v.Add("targetManifests", m)
	}

	var resp ServerSideDiffResponse
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/server-side-diff", v, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EventListOptions filter the events endpoint.
type EventListOptions struct {
	ResourceNamespace string
	ResourceName      string
	ResourceUID       string
	AppNamespace      string
	Project           string
}

// ListResourceEvents returns Kubernetes events for an application or one of
// its resources.
func (c *Client) ListResourceEvents(ctx context.Context, appName string, opts EventListOptions) (*EventList, error) {
	v := url.Values{}
	setNonEmpty(v, "resourceNamespace", opts.ResourceNamespace)
	setNonEmpty(v, "resourceName", opts.ResourceName)
	setNonEmpty(v, "resourceUID", opts.ResourceUID)
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)

	var list EventList
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/events", v, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// PodLogOptions select which container stream to read and how much of it.
type PodLogOptions struct {
	Namespace    string
	PodName      string
	Container    string
	SinceSeconds int64
	TailLines    int64
	Previous     bool
	Filter       string
	Kind         string
	Group        string
	ResourceName string
	AppNamespace string
	Project      string
}

// PodLogs fetches a bounded log window. The endpoint streams NDJSON where
// each line is either a {"result": {...}} wrapper or a bare log entry;
// blank lines are skipped. Follow is always disabled.
func (c *Client) PodLogs(ctx context.Context, appName string, opts PodLogOptions) ([]LogEntry, error) {
	v := url.Values{}
	setNonEmpty(v, "namespace", opts.Namespace)
	setNonEmpty(v, "podName", opts.PodName)
	setNonEmpty(v, "container", opts.Container)
	if opts.SinceSeconds > 0 {
		v.Set("sinceSeconds", strconv.FormatInt(opts.SinceSeconds, 10))
	}
	if opts.TailLines > 0 {
		v.Set("tailLines", strconv.FormatInt(opts.TailLines, 10))
	}
	if opts.Previous {
		v.Set("previous", "true")
	}
	setNonEmpty(v, "filter", opts.Filter)
	setNonEmpty(v, "kind", opts.Kind)
	setNonEmpty(v, "group", opts.Group)
	setNonEmpty(v, "resourceName", opts.ResourceName)
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)
	v.Set("follow", "false")

	body, err := c.getRaw(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/logs", v)
	if err != nil {
		return nil, err
	}
	return parseLogStream(body)
}

// logStreamLine is the streaming wrapper around a single log entry.
type logStreamLine struct {
	Result *LogEntry       `json:"result,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

func parseLogStream(body []byte) ([]LogEntry, error) {
	entries := make([]LogEntry, 0)
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var wrapped logStreamLine
		if err := json.Unmarshal([]byte(line), &wrapped); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "malformed log stream line"), ErrParse)
		}
		if wrapped.Result != nil {
			entries = append(entries, *wrapped.Result)
			continue
		}
		if wrapped.Error != nil {
			continue
		}

		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "malformed log entry"), ErrParse)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading log stream"), ErrParse)
	}

	return entries, nil
}

// ManifestOptions scope a manifests fetch.
type ManifestOptions struct {
	Revision        string
	AppNamespace    string
	Project         string
	SourcePositions []int64
	Revisions       []string
}

// GetManifests returns the rendered manifests for an application revision.
func (c *Client) GetManifests(ctx context.Context, appName string, opts ManifestOptions) (*ManifestResponse, error) {
	v := url.Values{}
	setNonEmpty(v, "revision", opts.Revision)
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)
	for _, p := range opts.SourcePositions {
		v.Add("sourcePositions", strconv.FormatInt(p, 10))
	}
	for _, r := range opts.Revisions {
		v.Add("revisions", r)
	}

	var resp ManifestResponse
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/manifests", v, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevisionMetadataOptions scope a revision metadata fetch.
type RevisionMetadataOptions struct {
	AppNamespace string
	Project      string
	SourceIndex  *int32
	VersionID    *int32
}

// GetRevisionMetadata returns commit metadata for one revision.
func (c *Client) GetRevisionMetadata(ctx context.Context, appName, revision string, opts RevisionMetadataOptions) (*RevisionMetadata, error) {
	v := url.Values{}
	setNonEmpty(v, "appNamespace", opts.AppNamespace)
	setNonEmpty(v, "project", opts.Project)
	if opts.SourceIndex != nil {
		v.Set("sourceIndex", strconv.FormatInt(int64(*opts.SourceIndex), 10))
	}
	if opts.VersionID != nil {
		v.Set("versionId", strconv.FormatInt(int64(*opts.VersionID), 10))
	}

	path := "/api/v1/applications/" + url.PathEscape(appName) + "/revisions/" + url.PathEscape(revision) + "/metadata"
	var meta RevisionMetadata
	if err := c.get(ctx, path, v, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ResourceOptions identify a single resource within an application.
type ResourceOptions struct {
	Namespace    string
	ResourceName string
	Version      string
	Group        string
	Kind         string
	AppNamespace string
	Project      string
}

func (o ResourceOptions) values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "namespace", o.Namespace)
	setNonEmpty(v, "resourceName", o.ResourceName)
	setNonEmpty(v, "version", o.Version)
	setNonEmpty(v, "group", o.Group)
	setNonEmpty(v, "kind", o.Kind)
	setNonEmpty(v, "appNamespace", o.AppNamespace)
	setNonEmpty(v, "project", o.Project)
	return v
}

// GetResource returns the live manifest of a single managed resource.
func (c *Client) GetResource(ctx context.Context, appName string, opts ResourceOptions) (*ResourceResponse, error) {
	var resp ResourceResponse
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/resource", opts.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSyncWindows returns the sync windows affecting an application.
func (c *Client) GetSyncWindows(ctx context.Context, appName, appNamespace string) (*SyncWindowsResponse, error) {
	v := url.Values{}
	setNonEmpty(v, "appNamespace", appNamespace)

	var resp SyncWindowsResponse
	if err := c.get(ctx, "/api/v1/applications/"+url.PathEscape(appName)+"/syncwindows", v, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Sync triggers a sync operation and returns the application afterwards.
func (c *Client) Sync(ctx context.Context, appName string, req SyncRequest) (*Application, error) {
	var app Application
	path := "/api/v1/applications/" + url.PathEscape(appName) + "/sync"
	if err := c.post(ctx, path, nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Rollback rolls an application back to a previous deployment by history ID.
func (c *Client) Rollback(ctx context.Context, appName string, req RollbackRequest) (*Application, error) {
	var app Application
	path := "/api/v1/applications/" + url.PathEscape(appName) + "/rollback"
	if err := c.post(ctx, path, nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// PatchResourceOptions identify the resource to patch and the patch type.
type PatchResourceOptions struct {
	ResourceOptions
	PatchType string
}

// PatchResource applies a patch document to a single managed resource.
func (c *Client) PatchResource(ctx context.Context, appName string, opts PatchResourceOptions, patch string) (*ResourceResponse, error) {
	v := opts.ResourceOptions.values()
	setNonEmpty(v, "patchType", opts.PatchType)

	var resp ResourceResponse
	path := "/api/v1/applications/" + url.PathEscape(appName) + "/resource"
	if err := c.post(ctx, path, v, patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "encoding request body"), ErrParse)
	}
	body, err := c.do(ctx, http.MethodPost, path, query, payload)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "building request"), ErrNetwork)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("argocd api request", zap.String("method", method), zap.String("url", u))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "request to %s failed", path), ErrNetwork)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading response body"), ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

func decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Mark(errors.Wrap(err, "decoding response"), ErrParse)
	}
	return nil
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
