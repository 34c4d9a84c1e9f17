package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/edutax/edutax-backend/internal/platform/kv"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

type Clients struct {
	KV   kv.Store
	OIDC *services.OIDCProvider
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Login state store. A single instance can keep it in memory; anything
	// behind a load balancer needs Redis.
	var store kv.Store
	if cfg.RedisAddr != "" {
		rs, err := kv.NewRedisStore(ctx, kv.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		store = rs
	} else {
		log.Warn("REDIS_ADDR not set, keeping login state in memory")
		store = kv.NewMemoryStore()
	}

	// Identity provider
	var provider *services.OIDCProvider
	if cfg.OIDCEnabled() {
		p, err := services.DiscoverOIDCProvider(ctx, &http.Client{Timeout: 10 * time.Second}, services.OIDCConfig{
			IssuerURL:    cfg.OIDCIssuerURL,
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL(),
			Scopes:       cfg.OIDCScopes,
		})
		if err != nil {
			_ = store.Close()
			return Clients{}, fmt.Errorf("discover identity provider: %w", err)
		}
		provider = p
	} else {
		log.Warn("OIDC_ISSUER_URL not set, sign-in is disabled")
	}

	return Clients{KV: store, OIDC: provider}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.KV != nil {
		_ = c.KV.Close()
	}
}
