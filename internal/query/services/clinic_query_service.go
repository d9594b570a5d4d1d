package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/smileatlas/dubaidental/internal/domain/entities"
)

// SortKey selects the ordering of a clinic listing
type SortKey string

const (
	// SortByRating orders by rating descending, ties broken by review count
	SortByRating SortKey = "rating"

	// SortByReviews orders by review count descending
	SortByReviews SortKey = "reviews"

	// SortByName orders by name ascending, locale-aware
	SortByName SortKey = "name"
)

// AllAreas is the area filter sentinel that disables filtering
const AllAreas = "all"

// Params bundles the transient inputs of one listing view. Every listing
// page recomputes its view from these on each input change; there is no
// cursor state held here.
type Params struct {
	Query string
	Area  string
	Sort  SortKey
}

// FilterByArea returns the records whose area exactly equals the given
// canonical area name. The AllAreas sentinel returns the input unfiltered.
func FilterByArea(records []entities.ClinicRecord, area string) []entities.ClinicRecord {
	if area == AllAreas || area == "" {
		return records
	}

	filtered := make([]entities.ClinicRecord, 0, len(records))
	for _, record := range records {
		if record.Area == area {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Search returns the records matching the query: a case-insensitive
// substring of the name, the area, or any service. An empty query matches
// everything.
func Search(records []entities.ClinicRecord, query string) []entities.ClinicRecord {
	if query == "" {
		return records
	}

	needle := strings.ToLower(query)
	matched := make([]entities.ClinicRecord, 0, len(records))

	for _, record := range records {
		if matchesQuery(record, needle) {
			matched = append(matched, record)
		}
	}
	return matched
}

func matchesQuery(record entities.ClinicRecord, needle string) bool {
	if strings.Contains(strings.ToLower(record.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(record.Area), needle) {
		return true
	}
	for _, service := range record.Services {
		if strings.Contains(strings.ToLower(service), needle) {
			return true
		}
	}
	return false
}

// SortBy returns a new ordered view of the records. The input is never
// mutated; the canonical review-count order stays intact for other
// consumers.
func SortBy(records []entities.ClinicRecord, key SortKey) []entities.ClinicRecord {
	out := make([]entities.ClinicRecord, len(records))
	copy(out, records)

	switch key {
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating > out[j].Rating
			}
			return out[i].ReviewCount > out[j].ReviewCount
		})
	case SortByReviews:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReviewCount > out[j].ReviewCount
		})
	case SortByName:
		collator := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Name, out[j].Name) < 0
		})
	}

	return out
}

// Nearby returns up to limit records sharing the subject's area, excluding
// the subject itself, best-rated first. Used for "other clinics in this
// area" panels.
func Nearby(records []entities.ClinicRecord, subject entities.ClinicRecord, limit int) []entities.ClinicRecord {
	sameArea := make([]entities.ClinicRecord, 0)
	for _, record := range records {
		if record.Area == subject.Area && record.Slug != subject.Slug {
			sameArea = append(sameArea, record)
		}
	}

	sorted := SortBy(sameArea, SortByRating)
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// AreaSummaries groups the records by area and returns per-area counts,
// largest areas first. Ties keep first-seen order.
func AreaSummaries(records []entities.ClinicRecord) []entities.AreaSummary {
	counts := make(map[string]int, len(records))
	order := make([]string, 0)

	for _, record := range records {
		if _, seen := counts[record.Area]; !seen {
			order = append(order, record.Area)
		}
		counts[record.Area]++
	}

	summaries := make([]entities.AreaSummary, 0, len(order))
	for _, area := range order {
		summaries = append(summaries, entities.AreaSummary{
			Name:  area,
			Slug:  entities.AreaSlug(area),
			Count: counts[area],
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})

	return summaries
}

// Average computes the arithmetic mean of a numeric field over the records,
// returning 0.0 for an empty collection.
func Average(records []entities.ClinicRecord, field func(entities.ClinicRecord) float64) float64 {
	if len(records) == 0 {
		return 0.0
	}

	var sum float64
	for _, record := range records {
		sum += field(record)
	}
	return sum / float64(len(records))
}

// AverageRating is the mean rating over the records
func AverageRating(records []entities.ClinicRecord) float64 {
	return Average(records, func(record entities.ClinicRecord) float64 {
		return record.Rating
	})
}

// Apply runs the full listing pipeline in its fixed order: area filter,
// then search, then sort. No stage observes a later one, and empty results
// come back as an empty slice, never an error.
func Apply(records []entities.ClinicRecord, params Params) []entities.ClinicRecord {
	view := FilterByArea(records, params.Area)
	view = Search(view, params.Query)
	if params.Sort != "" {
		view = SortBy(view, params.Sort)
	}
	return view
}
