package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

var errProviderNotConfigured = errors.New("secret: provider not configured")

// accessor is the slice of the Secret Manager client the provider needs.
type accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Provider reads secret payloads from Google Secret Manager.
type Provider struct {
	sm        accessor
	closer    func() error
	projectID string
}

// NewProvider dials Secret Manager with opts.
func NewProvider(ctx context.Context, projectID string, opts ...option.ClientOption) (*Provider, error) {
	sm, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	return &Provider{sm: sm, closer: sm.Close, projectID: strings.TrimSpace(projectID)}, nil
}

// ResourceName expands a bare secret id into a version resource name. Fully
// qualified names ("projects/...") are returned unchanged.
func ResourceName(projectID, secretID, version string) (string, error) {
	secretID = strings.TrimSpace(secretID)
	if secretID == "" {
		return "", errors.New("secret: secretID is empty")
	}
	if strings.HasPrefix(secretID, "projects/") {
		if !strings.Contains(secretID, "/versions/") {
			secretID += "/versions/latest"
		}
		return secretID, nil
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return "", errors.New("secret: projectID is empty")
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "latest"
	}
	return "projects/" + projectID + "/secrets/" + secretID + "/versions/" + version, nil
}

// Access returns the payload of the latest version of secretID.
func (p *Provider) Access(ctx context.Context, secretID string) ([]byte, error) {
	if p == nil || p.sm == nil {
		return nil, errProviderNotConfigured
	}
	name, err := ResourceName(p.projectID, secretID, "latest")
	if err != nil {
		return nil, err
	}

	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("access secret version %s: %w", name, err)
	}
	if resp == nil || resp.Payload == nil || len(resp.Payload.Data) == 0 {
		return nil, fmt.Errorf("secret: empty payload (%s)", name)
	}
	return resp.Payload.Data, nil
}

func (p *Provider) Close() error {
	if p == nil || p.closer == nil {
		return nil
	}
	return p.closer()
}
