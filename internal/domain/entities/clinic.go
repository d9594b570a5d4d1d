package entities

// ClinicRecord is the canonical representation of a dental clinic in the
// dataset. Field names follow the JSON contract consumed by the site's
// rendering layer and must stay stable.
type ClinicRecord struct {
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Address       string         `json:"address"`
	Area          string         `json:"area"`
	Phone         string         `json:"phone"`
	Website       string         `json:"website"`
	Rating        float64        `json:"rating"`
	ReviewCount   int            `json:"reviewCount"`
	Services      []string       `json:"services"`
	Hours         string         `json:"hours"`
	Description   string         `json:"description"`
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	PlaceID       string         `json:"placeId"`
	GoogleMapsURL string         `json:"googleMapsUrl"`
	Reviews       []ClinicReview `json:"reviews"`
	Types         []string       `json:"types"`
	Photos        []string       `json:"photos"`
}

// ClinicReview is a lightweight review snippet attached to a clinic
type ClinicReview struct {
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Time   string  `json:"time"`
}

// DatasetMeta carries audit information about an acquisition run
type DatasetMeta struct {
	TotalQueries  int    `json:"totalQueries"`
	TotalResults  int    `json:"totalResults"`
	UniqueClinics int    `json:"uniqueClinics"`
	ScrapedAt     string `json:"scrapedAt"`
}

// Dataset is the full persisted artifact: clinics sorted descending by
// review count, plus run metadata.
type Dataset struct {
	Clinics []ClinicRecord `json:"clinics"`
	Meta    DatasetMeta    `json:"_meta"`
}

// AreaSummary is a derived per-area view, never persisted
type AreaSummary struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
