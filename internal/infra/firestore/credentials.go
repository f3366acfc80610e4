package firestoreinfra

import (
	"encoding/json"
	"errors"
	"strings"

	appcfg "github.com/Abhishekkjainn/smartslot-api/internal/infra/config"
)

const (
	defaultAuthURI  = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURI = "https://oauth2.googleapis.com/token"
	defaultCertURL  = "https://www.googleapis.com/oauth2/v1/certs"
)

type serviceAccountJSON struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id,omitempty"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id,omitempty"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url,omitempty"`
	UniverseDomain          string `json:"universe_domain,omitempty"`
}

// ServiceAccountJSON renders env-supplied key material as a service-account
// key file. Escaped "\n" sequences in the private key are unfolded.
func ServiceAccountJSON(sa appcfg.ServiceAccount) ([]byte, error) {
	if !sa.Complete() {
		return nil, errors.New("firestore: service account needs GOOGLE_PRIVATE_KEY and GOOGLE_CLIENT_EMAIL")
	}

	out := serviceAccountJSON{
		Type:                    "service_account",
		ProjectID:               strings.TrimSpace(sa.ProjectID),
		PrivateKeyID:            strings.TrimSpace(sa.PrivateKeyID),
		PrivateKey:              normalizePrivateKey(sa.PrivateKey),
		ClientEmail:             strings.TrimSpace(sa.ClientEmail),
		ClientID:                strings.TrimSpace(sa.ClientID),
		AuthURI:                 orDefault(sa.AuthURI, defaultAuthURI),
		TokenURI:                orDefault(sa.TokenURI, defaultTokenURI),
		AuthProviderX509CertURL: orDefault(sa.AuthProviderX509CertURL, defaultCertURL),
		ClientX509CertURL:       strings.TrimSpace(sa.ClientX509CertURL),
		UniverseDomain:          strings.TrimSpace(sa.UniverseDomain),
	}
	return json.Marshal(out)
}

func normalizePrivateKey(k string) string {
	k = strings.TrimSpace(k)
	k = strings.Trim(k, `"`)
	return strings.ReplaceAll(k, `\n`, "\n")
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
