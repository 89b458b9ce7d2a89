// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package spoonacular is the client for the third-party recipe API. It owns
// the server-held API key: the key is injected into every upstream request
// and never appears in anything returned to callers of the proxy endpoints.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
)

const (
	defaultRetryInterval = 250 * time.Millisecond
	maxTries             = 3

	infoCacheTTL = time.Hour
)

// Client calls the recipe API. Upstream bodies are passed through as raw
// JSON rather than re-modeled; only the envelope arrays are extracted.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	// cache holds recipe-info responses keyed by recipe id. nil disables
	// caching; cache errors fall through to the upstream silently.
	cache *redis.Client

	retryInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for upstream requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache enables caching of recipe-info responses.
func WithCache(cache *redis.Client) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithRetryInterval sets the initial backoff interval for upstream retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.retryInterval = d
	}
}

// NewClient creates a recipe API client for the given base URL and API key.
func NewClient(baseURL string, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:    http.DefaultClient,
		baseURL:       baseURL,
		apiKey:        apiKey,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Random fetches up to number random recipes, optionally filtered by a
// comma-joined cuisine list and a meal type. Returns the raw recipes array.
func (c *Client) Random(ctx context.Context, number int, cuisines string, mealType string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(number))
	tags := cuisines
	if mealType != "" {
		if tags != "" {
			tags += ","
		}
		tags += mealType
	}
	if tags != "" {
		q.Set("include-tags", tags)
	}

	body, err := c.get(ctx, "/recipes/random", q)
	if err != nil {
		return nil, err
	}
	recipes := gjson.GetBytes(body, "recipes")
	if !recipes.IsArray() {
		return nil, fmt.Errorf("spoonacular: random: unexpected response shape")
	}
	return json.RawMessage(recipes.Raw), nil
}

// Search searches recipes by free-text query, optionally filtered by a
// comma-joined cuisine list. Returns the raw results array with full recipe
// information included.
func (c *Client) Search(ctx context.Context, query string, number int, cuisines string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("number", strconv.Itoa(number))
	q.Set("addRecipeInformation", "true")
	if cuisines != "" {
		q.Set("cuisine", cuisines)
	}

	body, err := c.get(ctx, "/recipes/complexSearch", q)
	if err != nil {
		return nil, err
	}
	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return nil, fmt.Errorf("spoonacular: search: unexpected response shape")
	}
	return json.RawMessage(results.Raw), nil
}

// Info fetches the full document for one recipe, served from cache when
// available.
func (c *Client) Info(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	key := "spoonacular:info:" + strconv.FormatInt(recipeID, 10)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Bytes(); err == nil {
			return json.RawMessage(cached), nil
		} else if err != redis.Nil {
			slog.DebugContext(ctx, "spoonacular: info cache read failed", "error", err)
		}
	}

	body, err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", recipeID), url.Values{})
	if err != nil {
		return nil, err
	}
	if !gjson.GetBytes(body, "id").Exists() {
		return nil, fmt.Errorf("spoonacular: info: unexpected response shape")
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, []byte(body), infoCacheTTL).Err(); err != nil {
			slog.DebugContext(ctx, "spoonacular: info cache write failed", "error", err)
		}
	}
	return json.RawMessage(body), nil
}

// get performs an upstream GET with the API key injected, retrying
// transient failures (transport errors, 429, 5xx) with bounded exponential
// backoff. Other 4xx responses fail immediately.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	q.Set("apiKey", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("spoonacular: creating request: %w", err))
		}
		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("spoonacular: GET %s: %w", path, err)
		}
		defer func() {
			_ = res.Body.Close()
		}()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("spoonacular: reading response: %w", err)
		}
		switch {
		case res.StatusCode >= 200 && res.StatusCode < 300:
			return body, nil
		case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
			return nil, fmt.Errorf("spoonacular: GET %s: upstream status %d", path, res.StatusCode)
		default:
			return nil, backoff.Permanent(fmt.Errorf("spoonacular: GET %s: upstream status %d", path, res.StatusCode))
		}
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))
	if err != nil {
		return nil, err
	}
	return body, nil
}
