package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mmcdole/cinepick/internal/domain"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "ko-KR"

	defaultTimeout       = 15 * time.Second
	defaultRatePerSecond = 20
	userAgent            = "Cinepick/1.0"

	// Consecutive failures before the breaker opens
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// ClientConfig holds connection settings for the metadata API
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Language      string
	Timeout       time.Duration
	RatePerSecond float64
}

// Client implements domain.CatalogRepository for TMDb
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

// NewClient creates a new TMDb API client
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = defaultRatePerSecond
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		// Burst must hold at least one token or Wait rejects every call
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(1, int(math.Ceil(cfg.RatePerSecond)))),
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "tmdb",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		// Answers the API gave on purpose say nothing about its health
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrNotFound) ||
				errors.Is(err, domain.ErrAuthFailed) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// doRequest performs an authenticated GET request.
// Every call carries the API key, the locale and include_adult=false,
// overriding whatever the caller put in query.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	q.Set("include_adult", "false")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, q.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.send(ctx, path, reqURL)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("tmdb request rejected by circuit breaker", "path", path)
		return nil, domain.ErrServerOffline
	}
	return body, err
}

func (c *Client) send(ctx context.Context, path, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// The URL carries the api key, so only the path is logged
	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return body, nil
}

// parseResponse decodes a JSON body into v
func (c *Client) parseResponse(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetListing returns one page of a listing endpoint such as /movie/popular
// or /trending/all/day
func (c *Client) GetListing(ctx context.Context, path string, query url.Values) (*domain.Page, error) {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var dto PageDTO
	if err := c.parseResponse(body, &dto); err != nil {
		return nil, err
	}
	return MapPage(dto, mediaTypeFromPath(path)), nil
}

// GetDetail returns the full record of a movie or series.
// Series details also carry credits, recommendations and similar titles.
func (c *Client) GetDetail(ctx context.Context, id int, mediaType domain.MediaType) (*domain.TitleDetail, error) {
	query := url.Values{}
	if mediaType == domain.MediaTypeTV {
		query.Set("append_to_response", "videos,credits,recommendations,similar")
	} else {
		query.Set("append_to_response", "videos")
	}

	path := fmt.Sprintf("/%s/%d", mediaType, id)
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var dto DetailDTO
	if err := c.parseResponse(body, &dto); err != nil {
		return nil, err
	}
	return MapDetail(dto, mediaType), nil
}

// GetSeason returns one season of a series with its episodes
func (c *Client) GetSeason(ctx context.Context, tvID, seasonNumber int) (*domain.Season, error) {
	path := fmt.Sprintf("/tv/%d/season/%d", tvID, seasonNumber)
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var dto SeasonDTO
	if err := c.parseResponse(body, &dto); err != nil {
		return nil, err
	}
	return MapSeason(dto, tvID), nil
}

// Search runs a title search restricted to one media type
func (c *Client) Search(ctx context.Context, query string, mediaType domain.MediaType) (*domain.Page, error) {
	q := url.Values{}
	q.Set("query", query)

	body, err := c.doRequest(ctx, "/search/"+mediaType.String(), q)
	if err != nil {
		return nil, err
	}

	var dto PageDTO
	if err := c.parseResponse(body, &dto); err != nil {
		return nil, err
	}
	return MapPage(dto, mediaType), nil
}
