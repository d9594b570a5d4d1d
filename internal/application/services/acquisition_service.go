package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smileatlas/dubaidental/internal/infrastructure/clients/places"
	"github.com/smileatlas/dubaidental/pkg/retry"
)

// DefaultSearchQueries is the curated query list: general dental terms plus
// one query per district. The Places API caps results per query, so coverage
// comes from breadth of queries, not pagination depth. Overlap between
// queries is expected and resolved by deduplication downstream.
var DefaultSearchQueries = []string{
	// General queries
	"dental clinic Dubai",
	"dentist Dubai",
	"dental center Dubai",
	"dental hospital Dubai",
	"orthodontist Dubai",
	"cosmetic dentist Dubai",
	"pediatric dentist Dubai",

	// Area-specific queries
	"dental clinic Dubai Marina",
	"dental clinic JBR",
	"dental clinic Jumeirah Beach Residence",
	"dental clinic JLT",
	"dental clinic Jumeirah Lakes Towers",
	"dental clinic Business Bay",
	"dental clinic Downtown Dubai",
	"dental clinic DIFC",
	"dental clinic Jumeirah",
	"dental clinic Al Barsha",
	"dental clinic Deira",
	"dental clinic Bur Dubai",
	"dental clinic Karama",
	"dental clinic Al Qusais",
	"dental clinic Silicon Oasis",
	"dental clinic International City",
	"dental clinic Palm Jumeirah",
	"dental clinic JVC",
	"dental clinic Jumeirah Village Circle",
	"dental clinic Sports City",
	"dental clinic Motor City",
	"dental clinic Dubai Hills",
	"dental clinic Arabian Ranches",
	"dental clinic Mirdif",
	"dental clinic Al Nahda",
	"dental clinic Discovery Gardens",
	"dental clinic Tecom",
	"dental clinic Sheikh Zayed Road",
	"dental clinic Satwa",
	"dental clinic Oud Metha",
	"dental clinic Healthcare City",
	"dental clinic Dubai Festival City",
	"dental clinic Al Rashidiya",
	"dental clinic Al Warqa",
	"dental clinic Muhaisnah",
	"dental clinic Dubai Investment Park",
	"dental clinic Jebel Ali",
}

// AcquisitionResult is the raw outcome of a crawl: every place returned by
// every query, duplicates included, plus the counters that feed run metadata.
type AcquisitionResult struct {
	Places       []places.Place
	TotalQueries int
	TotalResults int
}

// AcquisitionService crawls the Places API for dental clinics. Calls are
// strictly sequential with a fixed delay between them; quota safety is
// preferred over wall-clock speed since this runs as an offline batch.
type AcquisitionService struct {
	client   places.Client
	queries  []string
	delay    time.Duration
	pageSize int
	retryCfg retry.Config
	logger   zerolog.Logger
}

// NewAcquisitionService creates an acquisition service. A nil or empty query
// list falls back to DefaultSearchQueries.
func NewAcquisitionService(client places.Client, queries []string, delay time.Duration, pageSize int) *AcquisitionService {
	if len(queries) == 0 {
		queries = DefaultSearchQueries
	}
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	logger := log.With().Str("run_id", uuid.NewString()).Logger()

	return &AcquisitionService{
		client:   client,
		queries:  queries,
		delay:    delay,
		pageSize: pageSize,
		retryCfg: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			BackoffFactor: 2.0,
			OnRetry: func(attempt int, err error, nextDelay time.Duration) {
				logger.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).
					Msg("places api call failed, retrying")
			},
		},
		logger: logger,
	}
}

// Run executes every curated query, following pagination tokens, and returns
// the raw multiset of places. A failed query is logged and skipped; the run
// only aborts when the context is cancelled.
func (s *AcquisitionService) Run(ctx context.Context) (*AcquisitionResult, error) {
	result := &AcquisitionResult{}

	for _, query := range s.queries {
		s.logger.Info().Str("query", query).Msg("searching")

		pageToken := ""
		page := 1

		for {
			if err := s.throttle(ctx); err != nil {
				return result, err
			}

			var resp *places.TextSearchResponse
			err := retry.Do(ctx, s.retryCfg, func() error {
				var callErr error
				resp, callErr = s.client.TextSearch(ctx, places.TextSearchRequest{
					Query:     query,
					PageSize:  s.pageSize,
					PageToken: pageToken,
				})
				return callErr
			})
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				s.logger.Error().Err(err).Str("query", query).Int("page", page).
					Msg("query failed, skipping")
				break
			}

			result.TotalQueries++

			if len(resp.Places) == 0 {
				break
			}

			result.Places = append(result.Places, resp.Places...)
			result.TotalResults += len(resp.Places)
			s.logger.Debug().Str("query", query).Int("page", page).Int("places", len(resp.Places)).
				Msg("page fetched")

			pageToken = resp.NextPageToken
			if pageToken == "" {
				break
			}
			page++
		}
	}

	s.logger.Info().
		Int("total_queries", result.TotalQueries).
		Int("total_results", result.TotalResults).
		Msg("crawl complete")

	return result, nil
}

// FetchReviews retrieves the detail reviews for each place, keyed by place
// ID. A failed detail call degrades that one place to zero reviews.
func (s *AcquisitionService) FetchReviews(ctx context.Context, placeList []places.Place) (map[string][]places.Review, error) {
	reviews := make(map[string][]places.Review, len(placeList))

	for i, place := range placeList {
		if place.ID == "" {
			continue
		}

		if err := s.throttle(ctx); err != nil {
			return reviews, err
		}

		details, err := s.client.GetPlaceDetails(ctx, place.ID)
		if err != nil {
			if ctx.Err() != nil {
				return reviews, ctx.Err()
			}
			s.logger.Warn().Err(err).Str("place_id", place.ID).Str("name", place.DisplayName.Text).
				Msg("failed to fetch reviews, continuing without")
			continue
		}

		reviews[place.ID] = details.Reviews

		if (i+1)%10 == 0 {
			s.logger.Info().Int("processed", i+1).Int("total", len(placeList)).Msg("fetching reviews")
		}
	}

	return reviews, nil
}

func (s *AcquisitionService) throttle(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}
