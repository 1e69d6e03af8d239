package config

import (
	"encoding/json"
	"os"
	"strings"
)

// RemoteCredentials is the service-account material needed to reach the
// Google Drive mirror. All fields must be non-empty for remote mode;
// anything less means "remote unavailable", never a hard error.
type RemoteCredentials struct {
	ProjectID     string
	PrivateKeyID  string
	PrivateKey    string
	ClientEmail   string
	ClientID      string
	ClientCertURL string
}

// RemoteCredentialsFromEnv collects the service-account fields from the
// process environment. Called once at startup; the result is injected
// into the storage layer.
func RemoteCredentialsFromEnv() RemoteCredentials {
	return RemoteCredentials{
		ProjectID:     os.Getenv("GCP_PROJECT_ID"),
		PrivateKeyID:  os.Getenv("GCP_PRIVATE_KEY_ID"),
		PrivateKey:    os.Getenv("GCP_PRIVATE_KEY"),
		ClientEmail:   os.Getenv("GCP_CLIENT_EMAIL"),
		ClientID:      os.Getenv("GCP_CLIENT_ID"),
		ClientCertURL: os.Getenv("GCP_CLIENT_X509_CERT_URL"),
	}
}

// Complete reports whether every required field is present.
func (c RemoteCredentials) Complete() bool {
	return c.ProjectID != "" &&
		c.PrivateKeyID != "" &&
		c.PrivateKey != "" &&
		c.ClientEmail != "" &&
		c.ClientID != "" &&
		c.ClientCertURL != ""
}

// ServiceAccountJSON renders the credentials as a Google service
// account key document. Deployment environments tend to flatten the
// PEM newlines into literal "\n"; undo that here.
func (c RemoteCredentials) ServiceAccountJSON() ([]byte, error) {
	doc := map[string]string{
		"type":                        "service_account",
		"project_id":                  c.ProjectID,
		"private_key_id":              c.PrivateKeyID,
		"private_key":                 strings.ReplaceAll(c.PrivateKey, `\n`, "\n"),
		"client_email":                c.ClientEmail,
		"client_id":                   c.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        c.ClientCertURL,
	}
	return json.Marshal(doc)
}
