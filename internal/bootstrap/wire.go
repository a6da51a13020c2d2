package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/application/book"
	"github.com/bookverse/bookverse-api/internal/application/review"
	"github.com/bookverse/bookverse-api/internal/application/tag"
	"github.com/bookverse/bookverse-api/internal/config"
	"github.com/bookverse/bookverse-api/internal/infrastructure/db/postgres"
	"github.com/bookverse/bookverse-api/internal/infrastructure/memory"
	"github.com/bookverse/bookverse-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/bookverse/bookverse-api/internal/infrastructure/redis"
	"github.com/bookverse/bookverse-api/internal/infrastructure/security"
	"github.com/bookverse/bookverse-api/internal/logger"
	"github.com/bookverse/bookverse-api/internal/transport/http/handlers"
	"github.com/bookverse/bookverse-api/internal/transport/http/middleware"
	"github.com/bookverse/bookverse-api/internal/transport/http/router"
)

// NewServer wires the whole service together and returns the HTTP server
// plus a cleanup function closing every opened resource.
func NewServer() (*http.Server, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return newServer(cfg)
}

func newServer(cfg *config.Config) (*http.Server, func(), error) {
	// 1) database
	db, err := config.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	if cfg.Env == "dev" {
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	userRepo := postgres.NewUserRepo(db)
	bookRepo := postgres.NewBookRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	tagRepo := postgres.NewTagRepo(db)

	// 2) redis; the denylist falls back to memory in dev only, a prod
	// node without its revocation store must not come up.
	var redisCli *redis.Client
	{
		c := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			_ = c.Close()
			if cfg.Env != "dev" {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory revocation store")
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var revoked auth.RevocationStore
	if redisCli != nil {
		revoked = redis.NewRevocationStore(redisCli)
	} else {
		revoked = memory.NewRevocationStore()
	}
	cache := redis.NewCache(redisCli)

	// 3) mail publisher
	var pub auth.MailPublisher
	rpub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env != "dev" {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		pub = memory.NewNoopPublisher()
	} else {
		pub = rpub
		cleanupFns = append(cleanupFns, func() { _ = rpub.Close() })
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	codec := security.NewJWTCodec(cfg.JWTSecret, "bookverse-api")

	// 5) services
	authSvc := auth.NewService(userRepo, hasher, codec, revoked, pub, auth.Config{
		AccessTTL:             cfg.AccessTokenTTL,
		RefreshTTL:            cfg.RefreshTokenTTL,
		Domain:                cfg.Domain,
		VerifyEmailTokenTTL:   cfg.VerifyEmailTokenTTL,
		PasswordResetTokenTTL: cfg.PasswordResetTokenTTL,
	})
	bookSvc := book.New(bookRepo, reviewRepo, tagRepo, cache, 0)
	reviewSvc := review.New(reviewRepo, bookRepo, userRepo)
	tagSvc := tag.New(tagRepo, bookRepo)

	// 6) transport
	guard := middleware.NewGuard(codec, revoked, userRepo)

	mux := router.New(router.Deps{
		Auth:    handlers.NewAuthHandler(authSvc),
		Books:   handlers.NewBookHandler(bookSvc),
		Reviews: handlers.NewReviewHandler(reviewSvc),
		Tags:    handlers.NewTagHandler(tagSvc),
		Guard:   guard,
		Cfg:     cfg,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() { runCleanup(cleanupFns) }
	return srv, cleanup, nil
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
