package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/smileatlas/dubaidental/internal/adapters/dataset"
	"github.com/smileatlas/dubaidental/internal/application/services"
	"github.com/smileatlas/dubaidental/internal/domain/entities"
	"github.com/smileatlas/dubaidental/internal/infrastructure/clients/places"
	"github.com/smileatlas/dubaidental/internal/infrastructure/observability"
	queryservices "github.com/smileatlas/dubaidental/internal/query/services"
	"github.com/smileatlas/dubaidental/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	var output, rawOutput string
	var skipReviews bool
	flag.StringVar(&output, "output", cfg.Dataset.Path, "path of the committed clinic dataset")
	flag.StringVar(&rawOutput, "raw-output", cfg.Dataset.RawPath, "path of the raw place dump (empty to skip)")
	flag.BoolVar(&skipReviews, "skip-reviews", false, "skip the per-place review fetch")
	flag.Parse()

	observability.InitLogger("clinic-scraper", cfg.App.Env)
	logger := observability.GetLogger()

	if cfg.Places.APIKey == "" {
		logger.Fatal().Msg("PLACES_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	client := places.NewClient(cfg.Places.BaseURL, cfg.Places.APIKey)
	acquisition := services.NewAcquisitionService(client, nil, cfg.Places.RequestDelay, cfg.Places.PageSize)
	normalization := services.NewNormalizationService()

	result, err := acquisition.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("acquisition aborted")
	}

	unique := normalization.Deduplicate(result.Places)
	logger.Info().Int("raw", result.TotalResults).Int("unique", len(unique)).Msg("deduplicated")

	var reviews map[string][]places.Review
	if !skipReviews {
		reviews, err = acquisition.FetchReviews(ctx, unique)
		if err != nil {
			logger.Fatal().Err(err).Msg("review fetch aborted")
		}
	}

	ds := normalization.BuildDataset(unique, reviews, result.TotalQueries, result.TotalResults)

	if rawOutput != "" {
		if err := dataset.WriteJSON(rawOutput, unique); err != nil {
			logger.Fatal().Err(err).Str("path", rawOutput).Msg("failed to write raw place dump")
		}
		logger.Info().Str("path", rawOutput).Int("places", len(unique)).Msg("raw place dump written")
	}

	store := dataset.NewStore(output)
	if err := store.Write(ds); err != nil {
		logger.Fatal().Err(err).Str("path", output).Msg("failed to write dataset")
	}

	logSummary(ds)
	logger.Info().Str("path", output).Dur("elapsed", time.Since(start)).Msg("dataset written")
}

func logSummary(ds *entities.Dataset) {
	logger := observability.GetLogger()

	withPhone, withWebsite, withReviews := 0, 0, 0
	for _, clinic := range ds.Clinics {
		if clinic.Phone != "" {
			withPhone++
		}
		if clinic.Website != "" {
			withWebsite++
		}
		if len(clinic.Reviews) > 0 {
			withReviews++
		}
	}

	logger.Info().
		Int("clinics", len(ds.Clinics)).
		Int("with_phone", withPhone).
		Int("with_website", withWebsite).
		Int("with_reviews", withReviews).
		Float64("avg_rating", queryservices.AverageRating(ds.Clinics)).
		Msg("dataset summary")

	top := queryservices.SortBy(ds.Clinics, queryservices.SortByReviews)
	if len(top) > 10 {
		top = top[:10]
	}
	for i, clinic := range top {
		logger.Info().
			Int("rank", i+1).
			Str("name", clinic.Name).
			Int("reviews", clinic.ReviewCount).
			Float64("rating", clinic.Rating).
			Msg("top clinic by reviews")
	}
}
