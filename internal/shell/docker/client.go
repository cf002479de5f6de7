// Package docker fetches container inspection records from a Docker daemon.
package docker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/docker/docker/client"
)

// =============================================================================
// Interfaces
// =============================================================================

// Inspector returns the raw inspection JSON for one container.
type Inspector interface {
	InspectRaw(ctx context.Context, container string) ([]byte, error)
}

// =============================================================================
// Docker Client Implementation
// =============================================================================

// Client implements Inspector using the Docker SDK.
type Client struct {
	cli *client.Client
}

// NewClient creates a new Docker client.
// If host is empty, it uses the default Docker host from environment.
func NewClient(host string) (*Client, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, NewDockerError("NewClient", "", "", fmt.Sprintf("failed to create client: %v", err), ErrConnectionFailed)
	}
	return &Client{cli: cli}, nil
}

// Ping checks if the Docker daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.cli.Ping(ctx); err != nil {
		return NewDockerError("Ping", "", "", fmt.Sprintf("failed to ping docker: %v", err), ErrConnectionFailed)
	}
	return nil
}

// Close closes the Docker client connection.
func (c *Client) Close() error {
	return c.cli.Close()
}

// InspectRaw returns the daemon's inspection JSON for a container, exactly as
// the API sent it.
func (c *Client) InspectRaw(ctx context.Context, container string) ([]byte, error) {
	_, raw, err := c.cli.ContainerInspectWithRaw(ctx, container, false)
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, NewDockerError("InspectRaw", "container", container, "container not found", ErrContainerNotFound)
		}
		if client.IsErrConnectionFailed(err) {
			return nil, NewDockerError("InspectRaw", "container", container, err.Error(), ErrConnectionFailed)
		}
		return nil, NewDockerError("InspectRaw", "container", container, err.Error(), err)
	}
	return raw, nil
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot inspects container and returns a document shaped like
// `docker inspect` output: a JSON array holding the one record.
func Snapshot(ctx context.Context, inspector Inspector, container string) ([]byte, error) {
	raw, err := inspector.InspectRaw(ctx, container)
	if err != nil {
		return nil, err
	}
	doc, err := SnapshotDocument(raw)
	if err != nil {
		return nil, NewDockerError("Snapshot", "container", container, err.Error(), ErrInvalidRecord)
	}
	return doc, nil
}

// SnapshotDocument wraps one raw inspection object in an array and indents it
// the way the docker CLI does.
func SnapshotDocument(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	wrapped := make([]byte, 0, len(trimmed)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, ']')

	var out bytes.Buffer
	if err := json.Indent(&out, wrapped, "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
