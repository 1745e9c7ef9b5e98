package restdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/swagdoc/swagger"
)

// Config describes the API document. The zero value is usable: missing
// values fall back to the defaults documented on each field.
type Config struct {
	// Title defaults to "API".
	Title string `json:"title" yaml:"title" toml:"title"`

	// Version defaults to "1.0".
	Version string `json:"version" yaml:"version" toml:"version"`

	Description  string `json:"description" yaml:"description" toml:"description"`
	TermsURL     string `json:"terms_url" yaml:"terms_url" toml:"terms_url"`
	Contact      string `json:"contact" yaml:"contact" toml:"contact"`
	ContactURL   string `json:"contact_url" yaml:"contact_url" toml:"contact_url"`
	ContactEmail string `json:"contact_email" yaml:"contact_email" toml:"contact_email"`
	License      string `json:"license" yaml:"license" toml:"license"`
	LicenseURL   string `json:"license_url" yaml:"license_url" toml:"license_url"`

	// Prefix is the URL prefix every route is mounted under. It is
	// published as basePath, "/" when empty.
	Prefix string `json:"prefix" yaml:"prefix" toml:"prefix"`

	// DocPath serves a Swagger UI page under Prefix. Empty disables it.
	DocPath string `json:"doc_path" yaml:"doc_path" toml:"doc_path"`

	// SwaggerUI holds extra SwaggerUIBundle options for the UI page.
	SwaggerUI map[string]any `json:"swagger_ui" yaml:"swagger_ui" toml:"swagger_ui"`

	// CORSOrigins lets browsers on these origins fetch the swagger.json and
	// swagger.yaml documents. Entries are exact origins, "*", or patterns
	// like "https://*.example.com". Empty disables CORS.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`

	// Default names the default namespace, "default" when empty.
	Default string `json:"default" yaml:"default" toml:"default"`

	// DefaultLabel describes the default namespace, "Default namespace"
	// when empty.
	DefaultLabel string `json:"default_label" yaml:"default_label" toml:"default_label"`

	// Authorizations are published as securityDefinitions.
	Authorizations map[string]*swagger.SecurityScheme `json:"authorizations" yaml:"authorizations" toml:"authorizations"`

	// Security is the requirement applied to every operation that does not
	// declare its own.
	Security swagger.SecurityRequirements `json:"security" yaml:"security" toml:"security"`

	// DefaultID generates operation ids from the resource name and the
	// lower-case HTTP method. Defaults to DefaultOperationID.
	DefaultID func(resource, method string) string `json:"-" yaml:"-" toml:"-"`

	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger `json:"-" yaml:"-" toml:"-"`
}

func (c *Config) title() string {
	if c.Title == "" {
		return "API"
	}
	return c.Title
}

func (c *Config) version() string {
	if c.Version == "" {
		return "1.0"
	}
	return c.Version
}

func (c *Config) defaultNamespace() string {
	if c.Default == "" {
		return "default"
	}
	return c.Default
}

func (c *Config) defaultLabel() string {
	if c.DefaultLabel == "" {
		return "Default namespace"
	}
	return c.DefaultLabel
}

func (c *Config) defaultID() func(resource, method string) string {
	if c.DefaultID == nil {
		return DefaultOperationID
	}
	return c.DefaultID
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// prefix returns the normalized mount prefix, "" for the root.
func (c *Config) prefix() string {
	p := strings.TrimRight(c.Prefix, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (c *Config) basePath() string {
	if p := c.prefix(); p != "" {
		return p
	}
	return "/"
}

func (c *Config) info() swagger.Info {
	info := swagger.Info{
		Title:          c.title(),
		Version:        c.version(),
		Description:    c.Description,
		TermsOfService: c.TermsURL,
	}
	if c.Contact != "" || c.ContactURL != "" || c.ContactEmail != "" {
		info.Contact = &swagger.Contact{Name: c.Contact, URL: c.ContactURL, Email: c.ContactEmail}
	}
	if c.License != "" {
		info.License = &swagger.License{Name: c.License, URL: c.LicenseURL}
	}
	return info
}

// LoadConfig reads a configuration file. The format is chosen by extension:
// .yaml, .yml, .toml or .json.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q: %w", path, ext, errdefs.ErrInvalidArgument)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
