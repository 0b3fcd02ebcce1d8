package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/icy-r/portfolio/auth"
	"github.com/icy-r/portfolio/config"
	"github.com/icy-r/portfolio/content"
	"github.com/icy-r/portfolio/github"
	"github.com/icy-r/portfolio/logging"
	"github.com/icy-r/portfolio/mail"
	"github.com/icy-r/portfolio/server"
	"github.com/icy-r/portfolio/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.AdminEmail == "" {
		logger.Fatal("ADMIN_EMAIL must be set")
	}
	if cfg.TokenSecret == config.DevTokenSecret && cfg.IsProduction() {
		logger.Warn("TOKEN_SECRET is the development default; set a real secret in production")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := content.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongodb unavailable", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	store := content.NewStore(client.Database(cfg.MongoDB))

	verified, limiter := buildAuthStores(cfg, logger)

	authn, err := auth.New(auth.Config{
		AdminEmail: cfg.AdminEmail,
		Secret:     cfg.TokenSecret,
		Store:      verified,
	})
	if err != nil {
		logger.Fatal("init authenticator", zap.Error(err))
	}
	sessions := session.NewManager(cfg.TokenSecret, cfg.IsProduction(), session.DefaultTTL, nil)

	var mailer *mail.Mailer
	if cfg.EmailConfigured() {
		mailer = mail.New(cfg.EmailFrom, mail.SMTPSender(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword))
	} else {
		logger.Warn("email not configured; login links are returned in responses")
	}

	srv := server.New(server.Options{
		Authenticator: authn,
		Sessions:      sessions,
		Store:         store,
		GitHub:        github.NewClient(cfg.GitHubUsername),
		Mailer:        mailer,
		Limiter:       limiter,
		BaseURL:       cfg.BaseURL,
		Logger:        logger,
	})

	addr := ":" + strconv.Itoa(cfg.Port)
	logger.Info("listening", zap.String("addr", addr), zap.Bool("redis", cfg.RedisAddr != ""))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func buildAuthStores(cfg *config.Config, logger *zap.Logger) (auth.VerifiedStore, auth.RateLimiter) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory verified-email store; verifications will not span instances")
		return auth.NewMemoryStore(), auth.NewMemoryRateLimiter()
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis ping failed", zap.Error(err))
	}
	logger.Info("using redis verified-email store", zap.String("addr", cfg.RedisAddr))
	return auth.NewRedisStore(rdb, ""), auth.NewRedisRateLimiter(rdb, "")
}
