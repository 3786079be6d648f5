package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/alwaseet"
	"github.com/Checker-Finance/alwaseet-adapter/internal/api"
	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
	"github.com/Checker-Finance/alwaseet-adapter/internal/rate"
	internalsecrets "github.com/Checker-Finance/alwaseet-adapter/internal/secrets"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/cache"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/config"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/logger"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/secrets"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Infof("starting [%s]...", cfg.ServiceName)

	if err := cfg.Validate(); err != nil {
		logg.Fatalw("invalid configuration", "error", err)
	}

	stopCleaner := make(chan struct{})

	// --- Token store ---
	tokenStore, err := newTokenStore(cfg, logg.Desugar(), stopCleaner)
	if err != nil {
		logg.Fatalw("failed to init token store", "store", cfg.TokenStore, "error", err)
	}

	// --- Credential source ---
	source, err := newCredentialSource(ctx, cfg, logg.Desugar(), stopCleaner)
	if err != nil {
		logg.Fatalw("failed to init credential source", "source", cfg.CredentialSource, "error", err)
	}

	// --- Rate limiter ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	})

	// --- Al-Waseet client, token manager, service ---
	client := alwaseet.NewClient(logg.Desugar(), rateMgr, cfg.AlwaseetBaseURL, cfg.AlwaseetTimeout)
	tokenMgr := alwaseet.NewTokenManager(logg.Desugar(), client, tokenStore)
	svc := alwaseet.NewService(logg.Desugar(), tokenMgr, client)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	handler := api.NewAlwaseetHandler(logg.Desugar(), svc, source)
	api.RegisterRoutes(app, tokenStore, handler)

	// Start HTTP server
	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("["+cfg.ServiceName+"] running",
		"env", cfg.Env,
		"base_url", utils.MaskDSN(cfg.AlwaseetBaseURL),
		"timeout", cfg.AlwaseetTimeout,
		"credential_source", cfg.CredentialSource,
		"token_store", cfg.TokenStore)

	<-ctx.Done()
	logg.Infof("shutting down [%s]...", cfg.ServiceName)

	close(stopCleaner)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if err := tokenStore.Close(); err != nil {
		logg.Warnw("token_store.close_failed", "error", err)
	}
}

func newTokenStore(cfg *config.Config, logg *zap.Logger, stopCleaner <-chan struct{}) (auth.TokenStore, error) {
	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		logg.Info("token store: redis", zap.String("addr", utils.MaskDSN(cfg.RedisAddr)), zap.Int("db", cfg.RedisDB))
		st, err := auth.NewRedisStore(auth.RedisOptions{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPass,
			TTL:      cfg.TokenTTL,
		}, logg)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		st := auth.NewMemoryStore(cfg.TokenTTL)
		if cfg.TokenTTL > 0 {
			go st.StartCleaner(cfg.CleanupFreq, stopCleaner)
		}
		return st, nil
	}
}

func newCredentialSource(ctx context.Context, cfg *config.Config, logg *zap.Logger, stopCleaner <-chan struct{}) (api.CredentialSource, error) {
	switch cfg.CredentialSource {
	case config.CredentialSourceEnv:
		logg.Info("credential source: env", zap.String("user", utils.MaskSecret(cfg.AlwaseetUsername)))
		src, err := api.NewStaticSource(auth.Credentials{
			Username: cfg.AlwaseetUsername,
			Password: cfg.AlwaseetPassword,
		})
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.CredentialSourceAWS:
		provider, err := secrets.NewAWSProvider(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("aws secrets manager provider: %w", err)
		}
		credCache := cache.New[auth.Credentials](cfg.CacheTTL)
		go credCache.StartCleaner(cfg.CleanupFreq, stopCleaner)

		resolver := internalsecrets.NewCredentialResolver(logg, provider, credCache, cfg.AlwaseetSecretName)
		logg.Info("credential source: aws", zap.String("secret", cfg.AlwaseetSecretName))
		return api.NewResolverSource(resolver), nil
	default:
		logg.Info("credential source: headers",
			zap.String("username_header", api.HeaderUsername),
			zap.String("password_header", api.HeaderPassword))
		return api.HeaderSource{}, nil
	}
}
