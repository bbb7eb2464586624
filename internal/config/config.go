package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Identity  IdentityConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// IdentityConfig describes the hosted identity provider. Credentials are
// selected by presence: a full service-account JSON blob wins, then the
// discrete client-email/private-key pair, then ambient defaults (no
// explicit credentials, provider SDK resolves them from the runtime).
type IdentityConfig struct {
	ProjectID          string
	APIKey             string
	Issuer             string
	ServiceAccountJSON string
	ClientEmail        string
	PrivateKey         string
}

// CredentialMode reports which credential source will be used.
func (c IdentityConfig) CredentialMode() string {
	switch {
	case c.ServiceAccountJSON != "":
		return "service_account_json"
	case c.ClientEmail != "" && c.PrivateKey != "":
		return "discrete_fields"
	default:
		return "ambient"
	}
}

type SessionConfig struct {
	CookieName string
	Secret     string
	TTL        time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type CacheConfig struct {
	// RevalidateInterval is how long a rendered public page stays cached
	// before being re-queried. Matches the hourly revalidation policy of
	// the public site.
	RevalidateInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "powerise")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("SESSION_COOKIE_NAME", "auth-token")
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("IDENTITY_PROJECT_ID", "powerise-corporate-site")
	viper.SetDefault("CACHE_REVALIDATE_SECONDS", 3600)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			// optional: with no URI the service runs on in-memory
			// content storage
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Identity: IdentityConfig{
			ProjectID:          viper.GetString("IDENTITY_PROJECT_ID"),
			APIKey:             viper.GetString("IDENTITY_API_KEY"),
			Issuer:             viper.GetString("IDENTITY_ISSUER"),
			ServiceAccountJSON: os.Getenv("IDENTITY_SERVICE_ACCOUNT_KEY"),
			ClientEmail:        os.Getenv("IDENTITY_CLIENT_EMAIL"),
			PrivateKey:         os.Getenv("IDENTITY_PRIVATE_KEY"),
		},
		Session: SessionConfig{
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Cache: CacheConfig{
			RevalidateInterval: time.Duration(viper.GetInt("CACHE_REVALIDATE_SECONDS")) * time.Second,
		},
	}

	// Basic validation
	if cfg.Session.Secret == "" {
		log.Println("WARNING: SESSION_SECRET is not set; set a secure value in production")
	}

	if cfg.MongoDB.URI == "" {
		log.Println("WARNING: MONGODB_URI is not set; content will be stored in memory only")
	}

	return cfg, nil
}
