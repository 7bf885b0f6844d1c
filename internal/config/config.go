package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MemoryDSN selects the in-process store instead of Postgres.
const MemoryDSN = "memory"

type Config struct {
	Port        string        `env:"PORT" env-default:"8080"`
	DatabaseURL string        `env:"DATABASE_URL" env-required:"true"`
	PingTimeout time.Duration `env:"DB_PING_TIMEOUT" env-default:"5s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`

	Home HomeConfig
	Seed SeedConfig
	S3   S3Config
}

// HomeConfig feeds the GET / endpoint.
type HomeConfig struct {
	WelcomeMessage string `env:"CC_WELCOME_MESSAGE" env-default:"Welcome to the Content Calendar API"`
	About          string `env:"CC_ABOUT" env-default:"Plan and track articles, videos, courses and talks."`
}

type SeedConfig struct {
	Enabled     bool   `env:"SEED_ENABLED" env-default:"true"`
	FixturePath string `env:"FIXTURE_PATH" env-default:"data/content.json"`
}

// S3Config is only read when FIXTURE_PATH is an s3:// location.
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

func (c Config) UseMemoryStore() bool {
	return c.DatabaseURL == MemoryDSN
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
