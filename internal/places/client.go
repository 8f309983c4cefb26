// Package places resolves a destination keyword to a representative photo
// and place fields via an Unsplash-style search API. The access key is
// server-held; results go through a cache so repeated keywords skip the
// upstream entirely.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/voyplan/triphub/internal/cache"
)

var (
	ErrNoAPIKey = errors.New("photo api key not configured")
	ErrNotFound = errors.New("no place found for keyword")
	ErrUpstream = errors.New("photo upstream failed")
)

type Place struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url"`
	Photographer string `json:"photographer,omitempty"`
	Link         string `json:"link,omitempty"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	cache      cache.Cache
}

func New(baseURL, apiKey string, timeout time.Duration, c cache.Cache) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		cache:      c,
	}
}

type searchResponse struct {
	Results []struct {
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

func (c *Client) Lookup(ctx context.Context, keyword string) (Place, error) {
	if c.apiKey == "" {
		return Place{}, ErrNoAPIKey
	}

	cacheKey := "place:" + keyword

	if c.cache != nil {
		if raw, ok := c.cache.Get(ctx, cacheKey); ok {
			var p Place

			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				return p, nil
			}
			// poisoned entry, drop and refetch
			c.cache.Delete(ctx, cacheKey)
		}
	}

	p, err := c.fetch(ctx, keyword)

	if err != nil {
		return Place{}, err
	}

	if c.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			c.cache.Set(ctx, cacheKey, string(raw))
		}
	}

	return p, nil
}

func (c *Client) fetch(ctx context.Context, keyword string) (Place, error) {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)

	if err != nil {
		return Place{}, err
	}

	req.Header.Set("Authorization", "Client-ID "+c.apiKey)

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return Place{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Place{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out searchResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Place{}, fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}

	if len(out.Results) == 0 {
		return Place{}, ErrNotFound
	}

	r := out.Results[0]

	desc := r.Description

	if desc == "" {
		desc = r.AltDescription
	}

	return Place{
		Name:         keyword,
		Description:  desc,
		ImageURL:     r.URLs.Regular,
		Photographer: r.User.Name,
		Link:         r.Links.HTML,
	}, nil
}
