package argocd

import (
	"context"

	"go.uber.org/zap"
)

// Provider wraps the client with the mutation gate. The read-only flag is
// fixed at construction time and cannot be flipped for the lifetime of the
// process. When the gate is closed every mutating method fails with
// ErrReadOnly before any upstream request is built.
type Provider struct {
	*Client
	readOnly bool
}

// NewProvider builds the client and binds the mutation gate.
func NewProvider(cfg Config, readOnly bool, log *zap.Logger) (*Provider, error) {
	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Provider{Client: client, readOnly: readOnly}, nil
}

// ReadOnly reports whether mutating operations are blocked.
func (p *Provider) ReadOnly() bool {
	return p.readOnly
}

// Sync triggers a sync operation unless the gate is closed.
func (p *Provider) Sync(ctx context.Context, appName string, req SyncRequest) (*Application, error) {
	if p.readOnly {
		return nil, ErrReadOnly
	}
	return p.Client.Sync(ctx, appName, req)
}

// Rollback rolls an application back unless the gate is closed.
func (p *Provider) Rollback(ctx context.Context, appName string, req RollbackRequest) (*Application, error) {
	if p.readOnly {
		return nil, ErrReadOnly
	}
	return p.Client.Rollback(ctx, appName, req)
}

// PatchResource patches a managed resource unless the gate is closed.
func (p *Provider) PatchResource(ctx context.Context, appName string, opts PatchResourceOptions, patch string) (*ResourceResponse, error) {
	if p.readOnly {
		return nil, ErrReadOnly
	}
	return p.Client.PatchResource(ctx, appName, opts, patch)
}
