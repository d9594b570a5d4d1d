package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the surface the acquisition pipeline depends on
type Client interface {
	TextSearch(ctx context.Context, req TextSearchRequest) (*TextSearchResponse, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

// HTTPClient talks to the Google Places API (New)
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// TextSearchRequest is one page of a text-search query
type TextSearchRequest struct {
	Query     string
	PageSize  int
	PageToken string
}

// TextSearchResponse is a page of raw places plus an optional continuation token
type TextSearchResponse struct {
	Places        []Place `json:"places"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

// Place is a raw search result as returned by the API. It is ephemeral:
// normalization turns it into a ClinicRecord and it is never persisted
// except as an optional raw dump for debugging.
type Place struct {
	ID                  string        `json:"id"`
	DisplayName         LocalizedText `json:"displayName"`
	FormattedAddress    string        `json:"formattedAddress"`
	Rating              float64       `json:"rating"`
	UserRatingCount     int           `json:"userRatingCount"`
	NationalPhoneNumber string        `json:"nationalPhoneNumber"`
	WebsiteURI          string        `json:"websiteUri"`
	RegularOpeningHours *OpeningHours `json:"regularOpeningHours,omitempty"`
	Location            *LatLng       `json:"location,omitempty"`
	GoogleMapsURI       string        `json:"googleMapsUri"`
	Types               []string      `json:"types"`
	Photos              []Photo       `json:"photos"`
}

// LocalizedText is the API's wrapper around display strings
type LocalizedText struct {
	Text string `json:"text"`
}

// OpeningHours carries the human-readable weekly schedule
type OpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// LatLng is a geographic coordinate pair
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Photo references a photo resource by name
type Photo struct {
	Name string `json:"name"`
}

// PlaceDetails is the reviews-only detail response
type PlaceDetails struct {
	ID      string   `json:"id"`
	Reviews []Review `json:"reviews"`
}

// Review is a single user review on a place
type Review struct {
	Rating            float64            `json:"rating"`
	Text              *LocalizedText     `json:"text,omitempty"`
	AuthorAttribution *AuthorAttribution `json:"authorAttribution,omitempty"`
	PublishTime       string             `json:"publishTime"`
}

// AuthorAttribution identifies a review's author
type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
}

var searchFieldMask = strings.Join([]string{
	"places.id",
	"places.displayName",
	"places.formattedAddress",
	"places.rating",
	"places.userRatingCount",
	"places.nationalPhoneNumber",
	"places.websiteUri",
	"places.regularOpeningHours",
	"places.location",
	"places.googleMapsUri",
	"places.types",
	"places.photos",
	"nextPageToken",
}, ",")

var detailsFieldMask = strings.Join([]string{
	"id",
	"reviews",
}, ",")

// NewClient creates an HTTPClient for the given API base URL and key
func NewClient(baseURL, apiKey string) *HTTPClient {
	trimmed := strings.TrimRight(baseURL, "/")
	return &HTTPClient{
		baseURL: trimmed,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TextSearch issues one page of a text-search query. Results are not
// deduplicated here; overlapping queries are resolved downstream.
func (c *HTTPClient) TextSearch(ctx context.Context, req TextSearchRequest) (*TextSearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("search query is required")
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	body := map[string]interface{}{
		"textQuery": req.Query,
		"pageSize":  pageSize,
	}
	if req.PageToken != "" {
		body["pageToken"] = req.PageToken
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/places:searchText", c.baseURL)
	out := &TextSearchResponse{}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, searchFieldMask, bytes.NewReader(payload), out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPlaceDetails fetches the reviews for one place
func (c *HTTPClient) GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, fmt.Errorf("place id is required")
	}

	endpoint := fmt.Sprintf("%s/places/%s", c.baseURL, url.PathEscape(placeID))
	out := &PlaceDetails{}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, detailsFieldMask, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint, fieldMask string, body io.Reader, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("places api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	return nil
}
