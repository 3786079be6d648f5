package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVICE_NAME", "ENV", "LOG_LEVEL", "ALWASEET_PORT",
		"HTTP_READ_TIMEOUT", "HTTP_BODY_LIMIT",
		"ALWASEET_BASE_URL", "ALWASEET_TIMEOUT",
		"CREDENTIAL_SOURCE", "ALWASEET_USERNAME", "ALWASEET_PASSWORD",
		"ALWASEET_SECRET_NAME", "TOKEN_STORE", "TOKEN_TTL",
		"REDIS_ADDR", "REDIS_DB", "RATE_LIMIT_RPS",
	}
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ServiceName != "alwaseet-adapter" {
		t.Errorf("expected ServiceName=alwaseet-adapter, got %s", cfg.ServiceName)
	}
	if cfg.Env != "dev" {
		t.Errorf("expected Env=dev, got %s", cfg.Env)
	}
	if cfg.Port != 9040 {
		t.Errorf("expected Port=9040, got %d", cfg.Port)
	}
	if cfg.AlwaseetBaseURL != DefaultAlwaseetBaseURL {
		t.Errorf("expected AlwaseetBaseURL=%s, got %s", DefaultAlwaseetBaseURL, cfg.AlwaseetBaseURL)
	}
	if cfg.AlwaseetTimeout != 10*time.Second {
		t.Errorf("expected AlwaseetTimeout=10s, got %v", cfg.AlwaseetTimeout)
	}
	if cfg.CredentialSource != CredentialSourceHeader {
		t.Errorf("expected CredentialSource=header, got %s", cfg.CredentialSource)
	}
	if cfg.TokenStore != TokenStoreMemory {
		t.Errorf("expected TokenStore=memory, got %s", cfg.TokenStore)
	}
	if cfg.TokenTTL != 0 {
		t.Errorf("expected TokenTTL=0, got %v", cfg.TokenTTL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected RedisAddr=localhost:6379, got %s", cfg.RedisAddr)
	}
	if cfg.HTTPBodyLimit != 1*1024*1024 {
		t.Errorf("expected HTTPBodyLimit=1048576, got %d", cfg.HTTPBodyLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("ALWASEET_PORT", "8080")
	t.Setenv("ALWASEET_BASE_URL", "http://localhost:1234/v1/merchant/")
	t.Setenv("ALWASEET_TIMEOUT", "3s")
	t.Setenv("CREDENTIAL_SOURCE", "ENV")
	t.Setenv("ALWASEET_USERNAME", "merchant")
	t.Setenv("ALWASEET_PASSWORD", "s3cret")
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %s", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.Port)
	}
	if cfg.AlwaseetBaseURL != "http://localhost:1234/v1/merchant" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.AlwaseetBaseURL)
	}
	if cfg.AlwaseetTimeout != 3*time.Second {
		t.Errorf("expected AlwaseetTimeout=3s, got %v", cfg.AlwaseetTimeout)
	}
	if cfg.CredentialSource != CredentialSourceEnv {
		t.Errorf("expected CredentialSource=env, got %s", cfg.CredentialSource)
	}
	if cfg.AlwaseetUsername != "merchant" || cfg.AlwaseetPassword != "s3cret" {
		t.Errorf("unexpected credentials %q/%q", cfg.AlwaseetUsername, cfg.AlwaseetPassword)
	}
	if cfg.TokenStore != TokenStoreRedis {
		t.Errorf("expected TokenStore=redis, got %s", cfg.TokenStore)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected TokenTTL=1h, got %v", cfg.TokenTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected RedisDB=3, got %d", cfg.RedisDB)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALWASEET_PORT", "not-a-number")
	t.Setenv("ALWASEET_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Port != 9040 {
		t.Errorf("expected fallback Port=9040, got %d", cfg.Port)
	}
	if cfg.AlwaseetTimeout != 10*time.Second {
		t.Errorf("expected fallback AlwaseetTimeout=10s, got %v", cfg.AlwaseetTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"header source needs nothing", func(c *Config) {}, false},
		{"env source without credentials", func(c *Config) { c.CredentialSource = CredentialSourceEnv }, true},
		{"env source with credentials", func(c *Config) {
			c.CredentialSource = CredentialSourceEnv
			c.AlwaseetUsername = "u"
			c.AlwaseetPassword = "p"
		}, false},
		{"aws source without secret name", func(c *Config) { c.CredentialSource = CredentialSourceAWS }, true},
		{"aws source with secret name", func(c *Config) {
			c.CredentialSource = CredentialSourceAWS
			c.AlwaseetSecretName = "dev/alwaseet/merchant"
		}, false},
		{"unknown source", func(c *Config) { c.CredentialSource = "ldap" }, true},
		{"unknown token store", func(c *Config) { c.TokenStore = "memcached" }, true},
		{"zero timeout", func(c *Config) { c.AlwaseetTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
