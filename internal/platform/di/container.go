package di

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/option"

	httpin "github.com/Abhishekkjainn/smartslot-api/internal/adapters/in/http"
	pgrepo "github.com/Abhishekkjainn/smartslot-api/internal/adapters/out/db"
	fsrepo "github.com/Abhishekkjainn/smartslot-api/internal/adapters/out/firestore"
	"github.com/Abhishekkjainn/smartslot-api/internal/adapters/out/memory"
	usecase "github.com/Abhishekkjainn/smartslot-api/internal/application/usecase"
	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
	appcfg "github.com/Abhishekkjainn/smartslot-api/internal/infra/config"
	"github.com/Abhishekkjainn/smartslot-api/internal/infra/database"
	firestoreinfra "github.com/Abhishekkjainn/smartslot-api/internal/infra/firestore"
	"github.com/Abhishekkjainn/smartslot-api/internal/infra/monitoring"
	"github.com/Abhishekkjainn/smartslot-api/internal/infra/secret"
)

// Container bundles everything main needs to serve requests.
type Container struct {
	Config  *appcfg.Config
	VenueUC *usecase.VenueUsecase
	Metrics *monitoring.Metrics

	pinger    func(ctx context.Context) error
	cleanupFn []func() error
}

// NewContainer opens the configured store and wires the usecase on top of it.
func NewContainer(ctx context.Context, cfg *appcfg.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("di: config is nil")
	}
	c := &Container{Config: cfg}

	var repo venuedom.Repository
	switch strings.ToLower(cfg.StoreBackend) {
	case appcfg.BackendFirestore, "":
		r, err := c.openFirestore(ctx)
		if err != nil {
			c.Close()
			return nil, err
		}
		repo = r
	case appcfg.BackendPostgres:
		r, err := c.openPostgres(ctx)
		if err != nil {
			c.Close()
			return nil, err
		}
		repo = r
	case appcfg.BackendMemory:
		r := memory.NewVenueRepositoryMem()
		c.pinger = r.Ping
		repo = r
		log.Printf("[di] using in-memory venue store (data is lost on restart)")
	default:
		return nil, fmt.Errorf("di: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	opts := []usecase.VenueOption{usecase.WithAtomicToggles(cfg.TransactionalToggles)}
	if cfg.MetricsEnabled {
		c.Metrics = monitoring.NewMetrics()
		opts = append(opts, usecase.WithRecorder(c.Metrics))
	}
	c.VenueUC = usecase.NewVenueUsecase(repo, opts...)

	log.Printf("[di] container ready (backend=%s, transactional_toggles=%t, metrics=%t)",
		cfg.StoreBackend, cfg.TransactionalToggles, cfg.MetricsEnabled)
	return c, nil
}

func (c *Container) openFirestore(ctx context.Context) (*fsrepo.VenueRepositoryFS, error) {
	cfg := c.Config

	var secrets firestoreinfra.SecretReader
	if cfg.CredentialsSecret != "" && !cfg.ServiceAccount.Complete() {
		var smOpts []option.ClientOption
		if f := strings.TrimSpace(cfg.FirestoreCredentialsFile); f != "" {
			smOpts = append(smOpts, option.WithCredentialsFile(f))
		}
		sp, err := secret.NewProvider(ctx, cfg.FirestoreProjectID, smOpts...)
		if err != nil {
			return nil, fmt.Errorf("di: secret manager: %w", err)
		}
		c.cleanupFn = append(c.cleanupFn, sp.Close)
		secrets = sp
	}

	clientOpts, err := firestoreinfra.ClientOptions(ctx, cfg, secrets)
	if err != nil {
		return nil, err
	}
	cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, clientOpts...)
	if err != nil {
		return nil, err
	}
	c.cleanupFn = append(c.cleanupFn, cw.Close)
	c.pinger = cw.Ping

	return fsrepo.NewVenueRepositoryFS(cw.Client, cfg.VenuesCollection), nil
}

func (c *Container) openPostgres(ctx context.Context) (*pgrepo.VenueRepositoryPG, error) {
	db, err := database.NewConnection(ctx, c.Config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	c.cleanupFn = append(c.cleanupFn, db.Close)

	repo := pgrepo.NewVenueRepositoryPG(db.Client)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("di: ensure venues schema: %w", err)
	}
	c.pinger = repo.Ping
	return repo, nil
}

// RouterDeps returns the HTTP wiring for httpin.NewRouter.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		VenueUC:            c.VenueUC,
		Metrics:            c.Metrics,
		CORSAllowedOrigins: c.Config.CORSAllowedOrigins,
	}
}

// Ping checks that the backing store is reachable.
func (c *Container) Ping(ctx context.Context) error {
	if c.pinger == nil {
		return fmt.Errorf("di: no store configured")
	}
	return c.pinger(ctx)
}

// Close releases store clients in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.cleanupFn) - 1; i >= 0; i-- {
		if err := c.cleanupFn[i](); err != nil {
			log.Printf("[di] WARN: close: %v", err)
		}
	}
	c.cleanupFn = nil
}
