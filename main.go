package main

import (
	"bitwise74/review-api/app"
	"bitwise74/review-api/config"
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/listcache"
	"bitwise74/review-api/internal/service"
	"bitwise74/review-api/pkg/middleware"
	"bitwise74/review-api/pkg/security"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	makeLogger(viper.GetString("app.log_level"))

	d, err := makeDeps()
	if err != nil {
		zap.L().Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	store, err := makeCacheStore()
	if err != nil {
		zap.L().Fatal("Failed to initialize response cache", zap.Error(err))
	}
	d.Lists = listcache.New(store, viper.GetDuration("cache.ttl"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateLimit := viper.GetInt("security.rate_limit")

	router := app.NewRouter(d, app.Options{
		CORSOrigins: splitList(viper.GetString("host.cors_origins")),
		RateLimit: middleware.RateLimiterConfig{
			RequestsPerSecond: rateLimit,
			Burst:             rateLimit * 2,
			Context:           ctx,
		},
		BodyLimit: viper.GetInt64("security.body_limit"),
		Turnstile: middleware.TurnstileConfig{
			Enabled:     viper.GetBool("cloudflare.turnstile.enabled"),
			SecretToken: viper.GetString("cloudflare.turnstile.secret_token"),
		},
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", viper.GetInt("host.port")),
		Handler: router,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed to shut down cleanly", zap.Error(err))
	}
}

func makeDeps() (*internal.Deps, error) {
	conn, err := db.New(viper.GetString("db.driver"), viper.GetString("db.dsn"))
	if err != nil {
		return nil, err
	}

	secret := viper.GetString("jwt.secret")

	codes, err := security.NewCodeGenerator(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize confirmation codes, %w", err)
	}

	tokens, err := security.NewTokenIssuer(secret, viper.GetDuration("jwt.ttl"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer, %w", err)
	}

	var mailer service.Mailer = service.LogMailer{}
	if viper.GetString("mail.backend") == "smtp" {
		mailer = service.NewSMTPMailer(service.SMTPConfig{
			Host:     viper.GetString("mail.host"),
			Port:     viper.GetInt("mail.port"),
			Username: viper.GetString("mail.username"),
			Password: viper.GetString("mail.password"),
			Sender:   viper.GetString("mail.sender"),
		})
	}

	return &internal.Deps{
		DB:     conn,
		Codes:  codes,
		Tokens: tokens,
		Mailer: mailer,
		Now:    time.Now,
	}, nil
}

// makeCacheStore picks redis when an address is configured and an in-process store otherwise
func makeCacheStore() (persist.CacheStore, error) {
	ttl := viper.GetDuration("cache.ttl")
	if ttl == 0 {
		return nil, nil
	}

	addr := viper.GetString("cache.redis_addr")
	if addr == "" {
		return persist.NewMemoryStore(ttl), nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis at %s, %w", addr, err)
	}

	return persist.NewRedisStore(client), nil
}

func makeLogger(level string) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
