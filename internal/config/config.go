package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when -config is not passed.
const DefaultConfigPath = "config.yml"

// Load reads the YAML config file, applies environment overrides, and fills
// in defaults. A missing file is not an error: everything can be supplied
// through the environment.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only startup
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Media.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	setFromEnv(&c.Env, "APP_ENV")
	setFromEnv(&c.Database.DSN, "DATABASE_DSN")
	setFromEnv(&c.Database.Host, "DB_HOST")
	setFromEnv(&c.Database.User, "DB_USER")
	setFromEnv(&c.Database.Password, "DB_PASSWORD")
	setFromEnv(&c.Database.Name, "DB_NAME")
	setFromEnv(&c.RedisURL, "REDIS_URL")
	setFromEnv(&c.JWTSecret, "JWT_SECRET")

	setFromEnv(&c.Media.Backend, "MEDIA_BACKEND")
	setFromEnv(&c.Media.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setFromEnv(&c.Media.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setFromEnv(&c.Media.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	setFromEnv(&c.Media.S3.Bucket, "S3_BUCKET")
	setFromEnv(&c.Media.S3.Region, "S3_REGION")
	setFromEnv(&c.Media.S3.Endpoint, "S3_ENDPOINT")
	setFromEnv(&c.Media.S3.AccessKeyID, "S3_ACCESS_KEY_ID")
	setFromEnv(&c.Media.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY")
	setFromEnv(&c.Media.S3.CustomDomain, "S3_CUSTOM_DOMAIN")
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "production"
	}
	if strings.TrimSpace(c.Media.Backend) == "" {
		c.Media.Backend = MediaBackendCloudinary
	}
	c.Media.Backend = strings.ToLower(strings.TrimSpace(c.Media.Backend))
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

func (m *MediaConfig) validate() error {
	switch m.Backend {
	case MediaBackendCloudinary:
		if m.Cloudinary.CloudName == "" || m.Cloudinary.APIKey == "" || m.Cloudinary.APISecret == "" {
			return fmt.Errorf("incomplete cloudinary config: cloud_name/api_key/api_secret are required")
		}
	case MediaBackendS3:
		if m.S3.Bucket == "" || m.S3.Region == "" || m.S3.AccessKeyID == "" || m.S3.SecretAccessKey == "" {
			return fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
		}
	default:
		return fmt.Errorf("unknown media backend %q", m.Backend)
	}
	return nil
}
