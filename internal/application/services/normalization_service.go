package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smileatlas/dubaidental/internal/domain/entities"
	"github.com/smileatlas/dubaidental/internal/infrastructure/clients/places"
)

const (
	fallbackHours   = "Hours vary - call for details"
	fallbackName    = "Unknown Clinic"
	maxReviewsKept  = 5
	maxPhotosKept   = 3
	baselineService = "General Dentistry"
)

var hoursSpanRe = regexp.MustCompile(`: (.+)$`)

// serviceKeywords maps name substrings to inferred service labels, checked
// in order so the derived list is deterministic.
var serviceKeywords = []struct {
	keywords []string
	service  string
}{
	{[]string{"ortho"}, "Orthodontics"},
	{[]string{"cosmetic"}, "Cosmetic Dentistry"},
	{[]string{"implant"}, "Dental Implants"},
	{[]string{"pediatric", "kids", "children"}, "Pediatric Dentistry"},
	{[]string{"whitening"}, "Teeth Whitening"},
	{[]string{"invisalign"}, "Invisalign"},
}

// NormalizationService turns the raw multiset of places gathered across all
// queries into the one-clinic-per-place canonical dataset.
type NormalizationService struct {
	logger zerolog.Logger
}

// NewNormalizationService creates a normalization service
func NewNormalizationService() *NormalizationService {
	return &NormalizationService{logger: log.With().Str("component", "normalization").Logger()}
}

// Deduplicate collapses the raw multiset by place ID. Insertion is
// skip-on-exists, so the first-seen record for an ID wins and input order is
// preserved. Places without an ID are dropped.
func (s *NormalizationService) Deduplicate(raw []places.Place) []places.Place {
	seen := make(map[string]struct{}, len(raw))
	unique := make([]places.Place, 0, len(raw))

	for _, place := range raw {
		if place.ID == "" {
			continue
		}
		if _, ok := seen[place.ID]; ok {
			continue
		}
		seen[place.ID] = struct{}{}
		unique = append(unique, place)
	}

	return unique
}

// BuildDataset derives a ClinicRecord per unique place and assembles the
// dataset in its canonical order (descending review count). A place that
// fails transformation is logged and omitted; the batch continues.
func (s *NormalizationService) BuildDataset(unique []places.Place, reviews map[string][]places.Review, totalQueries, totalResults int) *entities.Dataset {
	clinics := make([]entities.ClinicRecord, 0, len(unique))
	usedSlugs := make(map[string]struct{}, len(unique))

	for _, place := range unique {
		record, err := transformPlace(place, reviews[place.ID])
		if err != nil {
			s.logger.Error().Err(err).Str("place_id", place.ID).Str("name", place.DisplayName.Text).
				Msg("skipping place")
			continue
		}

		record.Slug = uniqueSlug(record.Slug, usedSlugs)
		usedSlugs[record.Slug] = struct{}{}
		clinics = append(clinics, record)
	}

	sort.SliceStable(clinics, func(i, j int) bool {
		return clinics[i].ReviewCount > clinics[j].ReviewCount
	})

	return &entities.Dataset{
		Clinics: clinics,
		Meta: entities.DatasetMeta{
			TotalQueries:  totalQueries,
			TotalResults:  totalResults,
			UniqueClinics: len(unique),
			ScrapedAt:     time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func transformPlace(place places.Place, rawReviews []places.Review) (entities.ClinicRecord, error) {
	if place.ID == "" {
		return entities.ClinicRecord{}, fmt.Errorf("missing place id")
	}

	name := place.DisplayName.Text
	if name == "" {
		name = fallbackName
	}

	area := entities.ExtractArea(place.FormattedAddress)

	record := entities.ClinicRecord{
		Name:          name,
		Slug:          entities.Slugify(name),
		Address:       place.FormattedAddress,
		Area:          area,
		Phone:         place.NationalPhoneNumber,
		Website:       place.WebsiteURI,
		Rating:        place.Rating,
		ReviewCount:   place.UserRatingCount,
		Services:      inferServices(name),
		Hours:         formatHours(place.RegularOpeningHours),
		Description:   fmt.Sprintf("Professional dental care in %s offering comprehensive dental services.", area),
		PlaceID:       place.ID,
		GoogleMapsURL: place.GoogleMapsURI,
		Reviews:       mapReviews(rawReviews),
		Types:         place.Types,
	}

	if place.Location != nil {
		record.Lat = place.Location.Latitude
		record.Lng = place.Location.Longitude
	}

	for i, photo := range place.Photos {
		if i >= maxPhotosKept {
			break
		}
		record.Photos = append(record.Photos, photo.Name)
	}

	return record, nil
}

// inferServices derives the service list from name keywords on top of a
// fixed baseline. Every clinic gets General Dentistry first, then keyword
// matches, then the common Teeth Whitening and Root Canal entries.
func inferServices(name string) []string {
	services := []string{baselineService}
	nameLower := strings.ToLower(name)

	appendService := func(service string) {
		for _, existing := range services {
			if existing == service {
				return
			}
		}
		services = append(services, service)
	}

	for _, entry := range serviceKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(nameLower, keyword) {
				appendService(entry.service)
				break
			}
		}
	}

	appendService("Teeth Whitening")
	appendService("Root Canal")

	return services
}

// formatHours renders a human-readable hours string from the weekly
// descriptions. With a near-full week it compresses the first day's span to
// "Mon-Sat: ...", otherwise it uses the first entry verbatim.
func formatHours(hours *places.OpeningHours) string {
	if hours == nil || len(hours.WeekdayDescriptions) == 0 {
		return fallbackHours
	}

	days := hours.WeekdayDescriptions
	if len(days) >= 6 {
		if match := hoursSpanRe.FindStringSubmatch(days[0]); match != nil {
			return fmt.Sprintf("Mon-Sat: %s", match[1])
		}
	}

	if days[0] != "" {
		return days[0]
	}
	return fallbackHours
}

func mapReviews(rawReviews []places.Review) []entities.ClinicReview {
	if len(rawReviews) == 0 {
		return nil
	}

	kept := rawReviews
	if len(kept) > maxReviewsKept {
		kept = kept[:maxReviewsKept]
	}

	mapped := make([]entities.ClinicReview, 0, len(kept))
	for _, review := range kept {
		snippet := entities.ClinicReview{
			Author: "Anonymous",
			Rating: review.Rating,
			Time:   review.PublishTime,
		}
		if review.AuthorAttribution != nil && review.AuthorAttribution.DisplayName != "" {
			snippet.Author = review.AuthorAttribution.DisplayName
		}
		if review.Text != nil {
			snippet.Text = review.Text.Text
		}
		mapped = append(mapped, snippet)
	}

	return mapped
}

// uniqueSlug disambiguates colliding slugs with a numeric suffix. The
// original site never handled collisions; suffixing is a deliberate fix so
// two differently-named clinics (or two branches sharing a name) both keep a
// routable page.
func uniqueSlug(base string, used map[string]struct{}) string {
	if base == "" {
		base = "clinic"
	}
	if _, taken := used[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}
