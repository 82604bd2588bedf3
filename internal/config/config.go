// Package config holds run defaults and Zotero credentials.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Run defaults, overridable from the command line.
const (
	DefaultStateFile   = "auto_pubmed_state.json"
	DefaultArchiveFile = "auto_pubmed_archive.db"
	DefaultDaysBack    = 30
	DefaultRetMax      = 200
)

// Credentials are the Zotero write-API secrets, supplied out-of-band via
// the process environment (or a .env file).
type Credentials struct {
	UserID string
	APIKey string
}

// LoadCredentials reads ZOTERO_USER_ID and ZOTERO_API_KEY from the
// environment, loading a .env file first if one exists.
func LoadCredentials() Credentials {
	_ = godotenv.Load()
	return Credentials{
		UserID: os.Getenv("ZOTERO_USER_ID"),
		APIKey: os.Getenv("ZOTERO_API_KEY"),
	}
}

// Configured reports whether both secrets are present.
func (c Credentials) Configured() bool {
	return c.UserID != "" && c.APIKey != ""
}
