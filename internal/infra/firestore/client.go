package firestoreinfra

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	appcfg "github.com/Abhishekkjainn/smartslot-api/internal/infra/config"
)

// SecretReader fetches a secret payload by id.
type SecretReader interface {
	Access(ctx context.Context, secretID string) ([]byte, error)
}

// ClientWrapper holds the Firestore client and the project it is bound to.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// ClientOptions resolves the credential option for Google clients.
// Precedence: inline key material, Secret Manager secret, credentials file, ADC.
func ClientOptions(ctx context.Context, cfg *appcfg.Config, secrets SecretReader) ([]option.ClientOption, error) {
	if cfg == nil {
		return nil, errors.New("firestore: config is nil")
	}

	if cfg.ServiceAccount.Complete() {
		b, err := ServiceAccountJSON(cfg.ServiceAccount)
		if err != nil {
			return nil, err
		}
		log.Printf("[firestore] using service account from environment (%s)", cfg.ServiceAccount.ClientEmail)
		return []option.ClientOption{option.WithCredentialsJSON(b)}, nil
	}

	if cfg.CredentialsSecret != "" {
		if secrets == nil {
			return nil, fmt.Errorf("firestore: FIRESTORE_CREDENTIALS_SECRET=%s but no secret reader", cfg.CredentialsSecret)
		}
		b, err := secrets.Access(ctx, cfg.CredentialsSecret)
		if err != nil {
			return nil, fmt.Errorf("firestore: load credentials secret: %w", err)
		}
		log.Printf("[firestore] using service account from Secret Manager (%s)", cfg.CredentialsSecret)
		return []option.ClientOption{option.WithCredentialsJSON(b)}, nil
	}

	if f := strings.TrimSpace(cfg.FirestoreCredentialsFile); f != "" {
		log.Printf("[firestore] using credentials file %s", redactPath(f))
		return []option.ClientOption{option.WithCredentialsFile(f)}, nil
	}

	log.Printf("[firestore] using Application Default Credentials")
	return nil, nil
}

// NewClient initializes a Firebase app and returns its Firestore client.
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*ClientWrapper, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("firestore: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_PROJECT_ID)")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	log.Printf("[firestore] connected (project: %s)", projectID)
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping checks Firestore connectivity.
// Firestore has no ping RPC, so a collection listing stands in for one.
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("firestore client is nil")
	}
	if _, err := cw.Client.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}

func redactPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
