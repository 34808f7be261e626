package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/recordkit/recordsvc/handlers"
	"github.com/recordkit/recordsvc/internal/adminauth"
	"github.com/recordkit/recordsvc/internal/config"
	"github.com/recordkit/recordsvc/internal/configs"
	"github.com/recordkit/recordsvc/internal/store"
	"github.com/recordkit/recordsvc/internal/users"
	"github.com/recordkit/recordsvc/pkg/logger"
	"github.com/recordkit/recordsvc/pkg/metrics"
	"github.com/recordkit/recordsvc/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: backend=%s services=%v redis=%v", cfg.Store.Backend, cfg.Server.Services, cfg.Redis.Addr() != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory, err := store.NewFactory(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	var limiterRedis *redis.Client
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && cfg.Redis.Addr() != "" {
			limiterRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(limiterRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis fixed window %s", win)
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter: in-memory token bucket rps=%v burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	deps := map[string]handlers.Pinger{}
	if limiterRedis != nil {
		deps["ratelimit"] = redisPinger{limiterRedis}
	}

	if cfg.Server.Enabled("configs") {
		seed := configs.DefaultSeed()
		if cfg.Store.ConfigsSeedFile != "" {
			if seed, err = configs.LoadSeed(cfg.Store.ConfigsSeedFile); err != nil {
				logger.Fatalf("failed to load configs seed: %v", err)
			}
		}
		b := factory.Backend("configs")
		deps["configs"] = b

		var adminMW []gin.HandlerFunc
		ver, err := adminauth.FromConfig(ctx, cfg.Admin)
		if err != nil {
			logger.Fatalf("failed to initialize admin token verifier: %v", err)
		}
		if ver != nil {
			adminMW = append(adminMW, middleware.AuthMiddleware(ver))
			logger.Infof("admin API requires a bearer token")
		} else {
			logger.Warnf("admin API is unauthenticated; set ADMIN_JWT_SECRET or ADMIN_OIDC_ISSUER to protect it")
		}
		handlers.NewConfigHandler(configs.NewService(configs.NewStore(b, seed))).Register(r, adminMW...)
		logger.Infof("mounted configs routes (%s)", b.Location())
	}

	if cfg.Server.Enabled("users") {
		b := factory.Backend("users")
		deps["users"] = b
		handlers.NewUserHandler(users.NewService(users.NewStore(b))).Register(r)
		logger.Infof("mounted users routes (%s)", b.Location())
	}

	handlers.NewHealthHandler(deps).Register(r)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("record service listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	if limiterRedis != nil {
		_ = limiterRedis.Close()
	}
	if err := factory.Close(shutdownCtx); err != nil {
		logger.Errorf("closing store: %v", err)
	}
}

type redisPinger struct{ c *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }
