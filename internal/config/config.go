// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (e.g. observability, integration).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the EMPLOYETICA_ prefix. Keys are lowercased and
	the prefix removed; nesting uses "." so the variable has to carry the dot:

	  EMPLOYETICA_SERVER.PORT        -> server.port      -> Config.Server.Port
	  EMPLOYETICA_DATABASE.URI       -> database.uri     -> Config.Database.URI
	  EMPLOYETICA_AUTH.PROVIDER      -> auth.provider    -> Config.Auth.Provider
*/

// EnvPrefix is the prefix every recognised environment variable carries.
const EnvPrefix = "EMPLOYETICA_"

// Supported identity providers for bearer token verification.
const (
	AuthProviderFirebase = "firebase"
	AuthProviderClerk    = "clerk"
)

const (
	DefaultDatabaseName   = "Employetica"
	DefaultCurrency       = "usd"
	DefaultEmailFrom      = "Employetica <onboarding@resend.dev>"
	DefaultConnectTimeout = 10
)

// Config is the root configuration object for the application.
//
// Observability and Integration are pointers because they are optional.
// If not provided, defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   *IntegrationConfig   `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// ContactRateLimit is the number of public contact submissions allowed
	// per second per client IP. Zero falls back to the default.
	ContactRateLimit float64 `koanf:"contact_rate_limit"`
}

// DatabaseConfig contains the MongoDB connection string and database name.
type DatabaseConfig struct {
	URI            string `koanf:"uri" validate:"required"`
	Name           string `koanf:"name"`
	ConnectTimeout int    `koanf:"connect_timeout"`
	MaxPoolSize    uint64 `koanf:"max_pool_size"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig selects the identity provider and holds its credentials.
//
// Firebase needs a service account file (or ambient Google credentials);
// Clerk needs the secret key.
type AuthConfig struct {
	Provider                string `koanf:"provider" validate:"omitempty,oneof=firebase clerk"`
	FirebaseProjectID       string `koanf:"firebase_project_id"`
	FirebaseCredentialsFile string `koanf:"firebase_credentials_file"`
	ClerkSecretKey          string `koanf:"clerk_secret_key"`
}

// IntegrationConfig stores the credentials for third party services.
type IntegrationConfig struct {
	ResendAPIKey        string `koanf:"resend_api_key"`
	EmailFrom           string `koanf:"email_from"`
	AdminEmail          string `koanf:"admin_email"`
	StripeSecretKey     string `koanf:"stripe_secret_key"`
	StripeWebhookSecret string `koanf:"stripe_webhook_secret"`
	Currency            string `koanf:"currency"`
}

// listKeys are the koanf keys whose env value is a comma separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

		// Comma separated lists; other values (e.g. replica set URIs) keep their commas.
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Auth.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional values that were not provided.
func (c *Config) applyDefaults() {
	if c.Database.Name == "" {
		c.Database.Name = DefaultDatabaseName
	}
	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = DefaultConnectTimeout
	}

	if c.Server.ContactRateLimit <= 0 {
		c.Server.ContactRateLimit = 1
	}

	if c.Auth.Provider == "" {
		c.Auth.Provider = AuthProviderFirebase
	}

	if c.Integration == nil {
		c.Integration = &IntegrationConfig{}
	}
	if c.Integration.Currency == "" {
		c.Integration.Currency = DefaultCurrency
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = DefaultEmailFrom
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	c.Observability.ServiceName = "employetica"
	c.Observability.Environment = c.Primary.Env
}

// Validate checks the provider specific requirements.
func (a *AuthConfig) Validate() error {
	switch a.Provider {
	case AuthProviderFirebase:
		return nil
	case AuthProviderClerk:
		if a.ClerkSecretKey == "" {
			return fmt.Errorf("clerk_secret_key is required when provider is %q", AuthProviderClerk)
		}
		return nil
	default:
		return fmt.Errorf("unknown auth provider: %s", a.Provider)
	}
}

// IsLocal reports whether the application runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
