package main

import (
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"renthub/internal/adapters/observability"
	redisad "renthub/internal/adapters/redis"
	"renthub/internal/adapters/renthub"
	"renthub/internal/app"
	"renthub/internal/domain"
	"renthub/internal/shared"
)

// warmer re-fetches one unfiltered search per configured locality so the
// first visitor of the day hits a fresh cache entry.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	locations := warmLocations()
	workers := cfg.APIRPS
	if workers <= 0 {
		workers = 4
	}
	log.Info().
		Str("base", cfg.APIBaseURL).
		Int("workers", workers).
		Int("locations", len(locations)).
		Msg("warmer starting")

	if cfg.RedisAddr == "" || cfg.CacheTTL <= 0 {
		log.Fatal().Msg("REDIS_ADDR and a positive CACHE_TTL_SECONDS are required to warm the cache")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis unreachable")
	}

	client, err := renthub.New(cfg.APIBaseURL, cfg.APITimeout, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}
	svc := app.NewSearchService(client, cache, nil, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, loc := range locations {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(loc string) {
			defer wg.Done()
			defer sem.Release(1)

			items, err := svc.Refresh(ctx, domain.SearchQuery{Location: loc})
			if err != nil {
				failed.Add(1)
				log.Warn().Str("location", loc).Err(err).Msg("warm failed")
				return
			}
			log.Info().Str("location", loc).Int("results", len(items)).Msg("warm ok")
		}(loc)
	}

	wg.Wait()
	log.Info().Int32("failed", failed.Load()).Msg("warming completed")
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

func warmLocations() []string {
	raw := os.Getenv("WARM_LOCATIONS")
	if raw == "" {
		raw = shared.DefaultWarmLocations
	}
	var out []string
	for _, l := range strings.Split(raw, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
