package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// ServiceAccount is the key material of a Google service account, supplied
// piecewise through the environment.
type ServiceAccount struct {
	ProjectID               string
	PrivateKeyID            string
	PrivateKey              string
	ClientEmail             string
	ClientID                string
	AuthURI                 string
	TokenURI                string
	AuthProviderX509CertURL string
	ClientX509CertURL       string
	UniverseDomain          string
}

// Complete reports whether enough fields are present to build a credential.
func (s ServiceAccount) Complete() bool {
	return strings.TrimSpace(s.PrivateKey) != "" && strings.TrimSpace(s.ClientEmail) != ""
}

// Config holds every environment setting the service reads.
type Config struct {
	Port         string
	StoreBackend string

	// Firestore
	FirestoreProjectID       string
	VenuesCollection         string
	FirestoreCredentialsFile string
	CredentialsSecret        string
	ServiceAccount           ServiceAccount

	// PostgreSQL
	DatabaseURL string

	TransactionalToggles bool
	CORSAllowedOrigins   []string
	MetricsEnabled       bool
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] WARN: could not load .env: %v", err)
	}

	projectID := firstNonEmpty(
		os.Getenv("FIRESTORE_PROJECT_ID"),
		os.Getenv("GOOGLE_PROJECT_ID"),
		os.Getenv("GOOGLE_CLOUD_PROJECT"),
	)

	return &Config{
		Port:         getenvDefault("PORT", "3000"),
		StoreBackend: strings.ToLower(getenvDefault("STORE_BACKEND", BackendFirestore)),

		FirestoreProjectID: projectID,
		VenuesCollection:   getenvDefault("VENUES_COLLECTION", "venues"),
		FirestoreCredentialsFile: firstNonEmpty(
			os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
			os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		),
		CredentialsSecret: strings.TrimSpace(os.Getenv("FIRESTORE_CREDENTIALS_SECRET")),
		ServiceAccount: ServiceAccount{
			ProjectID:               projectID,
			PrivateKeyID:            os.Getenv("GOOGLE_PRIVATE_KEY_ID"),
			PrivateKey:              os.Getenv("GOOGLE_PRIVATE_KEY"),
			ClientEmail:             os.Getenv("GOOGLE_CLIENT_EMAIL"),
			ClientID:                os.Getenv("GOOGLE_CLIENT_ID"),
			AuthURI:                 os.Getenv("GOOGLE_AUTH_URI"),
			TokenURI:                os.Getenv("GOOGLE_TOKEN_URI"),
			AuthProviderX509CertURL: os.Getenv("GOOGLE_AUTH_PROVIDER_X509_CERT_URL"),
			ClientX509CertURL:       os.Getenv("GOOGLE_CLIENT_X509_CERT_URL"),
			UniverseDomain:          os.Getenv("GOOGLE_UNIVERSE_DOMAIN"),
		},

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		TransactionalToggles: getenvBool("TRANSACTIONAL_TOGGLES", false),
		CORSAllowedOrigins:   splitCSV(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),
		MetricsEnabled:       getenvBool("METRICS_ENABLED", true),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] WARN: %s=%q is not a boolean, using %v", key, v, def)
		return def
	}
	return b
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// splitCSV parses "a,b,c" / "a, b, c" into []string (empty trimmed items are removed).
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
