package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Credential sources understood by the HTTP layer.
const (
	CredentialSourceEnv    = "env"
	CredentialSourceHeader = "header"
	CredentialSourceAWS    = "aws"
)

// Token store backends.
const (
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
)

// DefaultAlwaseetBaseURL is the merchant API root of the production upstream.
const DefaultAlwaseetBaseURL = "https://api.alwaseet-iq.net/v1/merchant"

// Config holds the runtime configuration for the alwaseet-adapter.
type Config struct {
	ServiceName      string
	Env              string
	LogLevel         string
	Port             int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	// Upstream
	AlwaseetBaseURL string
	AlwaseetTimeout time.Duration
	RateLimitRPS    int
	RateLimitBurst  int

	// Credentials. Only the fields relevant to CredentialSource are read.
	CredentialSource   string
	AlwaseetUsername   string
	AlwaseetPassword   string
	AlwaseetSecretName string
	AWSRegion          string
	CacheTTL           time.Duration
	CleanupFreq        time.Duration

	// Token store. A zero TokenTTL keeps tokens until restart (or eviction in Redis).
	TokenStore string
	TokenTTL   time.Duration
	RedisAddr  string
	RedisDB    int
	RedisPass  string
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:        GetEnv("SERVICE_NAME", "alwaseet-adapter"),
		Env:                GetEnv("ENV", "dev"),
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		Port:               GetEnvInt("ALWASEET_PORT", 9040),
		HTTPReadTimeout:    GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout:   GetEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		HTTPIdleTimeout:    GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:      GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),
		AlwaseetBaseURL:    strings.TrimRight(GetEnv("ALWASEET_BASE_URL", DefaultAlwaseetBaseURL), "/"),
		AlwaseetTimeout:    GetEnvDuration("ALWASEET_TIMEOUT", 10*time.Second),
		RateLimitRPS:       GetEnvInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     GetEnvInt("RATE_LIMIT_BURST", 20),
		CredentialSource:   strings.ToLower(GetEnv("CREDENTIAL_SOURCE", CredentialSourceHeader)),
		AlwaseetUsername:   GetEnv("ALWASEET_USERNAME", ""),
		AlwaseetPassword:   GetEnv("ALWASEET_PASSWORD", ""),
		AlwaseetSecretName: GetEnv("ALWASEET_SECRET_NAME", ""),
		AWSRegion:          GetEnv("AWS_REGION", "us-east-2"),
		CacheTTL:           GetEnvDuration("CACHE_TTL", 24*time.Hour),
		CleanupFreq:        GetEnvDuration("CACHE_CLEANUP_FREQ", 10*time.Minute),
		TokenStore:         strings.ToLower(GetEnv("TOKEN_STORE", TokenStoreMemory)),
		TokenTTL:           GetEnvDuration("TOKEN_TTL", 0),
		RedisAddr:          GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            GetEnvInt("REDIS_DB", 0),
		RedisPass:          GetEnv("REDIS_PASS", ""),
	}
}

// Validate checks the combinations Load cannot default its way out of.
func (c *Config) Validate() error {
	switch c.CredentialSource {
	case CredentialSourceEnv:
		if c.AlwaseetUsername == "" || c.AlwaseetPassword == "" {
			return fmt.Errorf("ALWASEET_USERNAME and ALWASEET_PASSWORD are required when CREDENTIAL_SOURCE=env")
		}
	case CredentialSourceHeader:
	case CredentialSourceAWS:
		if c.AlwaseetSecretName == "" {
			return fmt.Errorf("ALWASEET_SECRET_NAME is required when CREDENTIAL_SOURCE=aws")
		}
	default:
		return fmt.Errorf("unknown CREDENTIAL_SOURCE %q", c.CredentialSource)
	}

	switch c.TokenStore {
	case TokenStoreMemory, TokenStoreRedis:
	default:
		return fmt.Errorf("unknown TOKEN_STORE %q", c.TokenStore)
	}

	if c.AlwaseetTimeout <= 0 {
		return fmt.Errorf("ALWASEET_TIMEOUT must be positive")
	}
	return nil
}
