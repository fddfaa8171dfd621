// Package seed populates a fresh store with a realistic catalog, optionally
// pulling photo URLs from a Pexels-compatible stock photo API.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultPhotoBaseURL = "https://api.pexels.com/v1"

// PhotoClient searches a Pexels-compatible API for stock photo URLs. A nil
// client (no API key) makes seeding fall back to placeholder images.
type PhotoClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewPhotoClient(apiKey, baseURL string) *PhotoClient {
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultPhotoBaseURL
	}
	return &PhotoClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type photoSearchResponse struct {
	Photos []struct {
		ID  int64 `json:"id"`
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
		Alt string `json:"alt"`
	} `json:"photos"`
}

// Search returns up to perPage photo URLs for the query.
func (c *PhotoClient) Search(ctx context.Context, query string, perPage int) ([]string, error) {
	if c == nil {
		return nil, nil
	}
	if perPage <= 0 {
		perPage = 3
	}
	u := fmt.Sprintf("%s/search?query=%s&per_page=%s",
		c.baseURL, url.QueryEscape(query), strconv.Itoa(perPage))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo search %q: %w", query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo search %q: unexpected status %d", query, resp.StatusCode)
	}

	var parsed photoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("photo search %q: decode: %w", query, err)
	}
	out := make([]string, 0, len(parsed.Photos))
	for _, p := range parsed.Photos {
		if p.Src.Large != "" {
			out = append(out, p.Src.Large)
		}
	}
	return out, nil
}
