package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "renthub/internal/adapters/http_server"
	"renthub/internal/adapters/observability"
	redisad "renthub/internal/adapters/redis"
	"renthub/internal/adapters/renthub"
	"renthub/internal/app"
	"renthub/internal/domain"
	"renthub/internal/shared"
	mysqlrepo "renthub/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := renthub.New(cfg.APIBaseURL, cfg.APITimeout, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}
	log.Info().Str("base", cfg.APIBaseURL).Dur("timeout", cfg.APITimeout).Msg("search backend configured")

	// optional deps; interfaces stay nil when disabled
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, continuing without cache")
		} else {
			cache = rc
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
		}
	}

	var history domain.SearchHistory
	if cfg.MySQLDSN != "" {
		dsn, err := mysqlrepo.NormalizeDSN(cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid MYSQL_DSN")
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		history = mysqlrepo.New(db)
		log.Info().Msg("database connection ok")
	}

	svc := app.NewSearchService(client, cache, history, cfg.CacheTTL)

	// http; request timeout leaves headroom over the backend timeout
	srv := server.New(cfg.APITimeout+5*time.Second, cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Form:            app.NewSearchForm(svc),
		Svc:             svc,
		DefaultLocation: cfg.DefaultLocation,
		BrowseLimit:     cfg.BrowseLimit,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("web listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return observability.Serve(gctx, cfg.MetricsAddr, reg)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}
