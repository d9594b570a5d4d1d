package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSearch_RequestShape(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotMask string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(TextSearchResponse{
			Places: []Place{
				{ID: "p1", DisplayName: LocalizedText{Text: "Smile Dental"}},
			},
			NextPageToken: "tok-2",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	resp, err := client.TextSearch(context.Background(), TextSearchRequest{Query: "dental clinic Dubai"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/places:searchText", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Contains(t, gotMask, "places.id")
	assert.Contains(t, gotMask, "nextPageToken")
	assert.Equal(t, "dental clinic Dubai", gotBody["textQuery"])
	assert.Equal(t, float64(20), gotBody["pageSize"])
	assert.NotContains(t, gotBody, "pageToken")

	require.Len(t, resp.Places, 1)
	assert.Equal(t, "p1", resp.Places[0].ID)
	assert.Equal(t, "Smile Dental", resp.Places[0].DisplayName.Text)
	assert.Equal(t, "tok-2", resp.NextPageToken)
}

func TestTextSearch_PageTokenForwarded(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(TextSearchResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.TextSearch(context.Background(), TextSearchRequest{
		Query:     "dentist Dubai",
		PageToken: "tok-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", gotBody["pageToken"])
}

func TestTextSearch_EmptyQueryRejected(t *testing.T) {
	client := NewClient("http://unused", "secret")
	_, err := client.TextSearch(context.Background(), TextSearchRequest{Query: "  "})
	assert.Error(t, err)
}

func TestTextSearch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.TextSearch(context.Background(), TextSearchRequest{Query: "dentist Dubai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGetPlaceDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/places/p1", r.URL.Path)
		assert.Equal(t, "id,reviews", r.Header.Get("X-Goog-FieldMask"))

		json.NewEncoder(w).Encode(PlaceDetails{
			ID: "p1",
			Reviews: []Review{
				{
					Rating:            5,
					Text:              &LocalizedText{Text: "Great dentist"},
					AuthorAttribution: &AuthorAttribution{DisplayName: "Amina"},
					PublishTime:       "2025-06-01T10:00:00Z",
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	details, err := client.GetPlaceDetails(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, details.Reviews, 1)
	assert.Equal(t, "Amina", details.Reviews[0].AuthorAttribution.DisplayName)
	assert.Equal(t, "Great dentist", details.Reviews[0].Text.Text)
}

func TestGetPlaceDetails_EmptyIDRejected(t *testing.T) {
	client := NewClient("http://unused", "secret")
	_, err := client.GetPlaceDetails(context.Background(), "")
	assert.Error(t, err)
}
