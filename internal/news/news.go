package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"storefront_service/internal/config"
	"storefront_service/internal/lib/fetch"
	sl "storefront_service/internal/lib/logger"
	"storefront_service/internal/metrics"
	"storefront_service/internal/models"
)

var ErrMissingAPIKey = errors.New("news api key is not configured")

// Mode selects the upstream endpoint.
const (
	ModeTopHeadlines = "top"
	ModeEverything   = "everything"
)

type Query struct {
	Mode     string
	Q        string
	Category string
	Country  string
	PageSize int
}

// CacheKey is stable across requests with the same parameters.
func (q Query) CacheKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", q.Mode, q.Q, q.Category, q.Country, q.PageSize)
}

type Cache interface {
	SaveNews(ctx context.Context, key string, articles []models.Article) error
	News(ctx context.Context, key string) ([]models.Article, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(cfg config.News) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    cfg.FetchTimeout,
		httpClient: &http.Client{},
	}
}

func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

type vendorArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

type vendorResponse struct {
	Status   string          `json:"status"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Articles []vendorArticle `json:"articles"`
}

// Fetch calls /v2/top-headlines or /v2/everything depending on q.Mode.
func (c *Client) Fetch(ctx context.Context, q Query) ([]models.Article, error) {
	const op = "news.Fetch"

	if !c.HasCredentials() {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingAPIKey)
	}

	endpoint := "/v2/top-headlines"
	if q.Mode == ModeEverything {
		endpoint = "/v2/everything"
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	if q.Q != "" {
		params.Set("q", q.Q)
	}
	if q.Category != "" && q.Mode != ModeEverything {
		params.Set("category", q.Category)
	}
	if q.Country != "" && q.Mode != ModeEverything {
		params.Set("country", q.Country)
	}
	if q.PageSize > 0 {
		params.Set("pageSize", fmt.Sprint(q.PageSize))
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	start := time.Now()

	resp, err := fetch.Do(ctx, c.httpClient, req, c.timeout)
	if err != nil {
		metrics.RecordVendorRequest("newsapi", metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordVendorRequest("newsapi", metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("%s: failed to read response body: %w", op, err)
	}

	var vr vendorResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		metrics.RecordVendorRequest("newsapi", metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("%s: failed to unmarshal response: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK || vr.Status != "ok" {
		metrics.RecordVendorRequest("newsapi", metrics.OutcomeBadStatus, time.Since(start))
		return nil, fmt.Errorf("%s: newsapi error %s: %s", op, vr.Code, vr.Message)
	}

	metrics.RecordVendorRequest("newsapi", metrics.OutcomeOK, time.Since(start))

	articles := make([]models.Article, 0, len(vr.Articles))
	for _, a := range vr.Articles {
		articles = append(articles, models.Article{
			Source:      a.Source.Name,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}

// Service layers the time-boxed cache over the client. Cache errors are
// never fatal: a broken cache degrades to an upstream fetch.
type Service struct {
	client *Client
	cache  Cache
	log    *slog.Logger
}

func NewService(client *Client, cache Cache, log *slog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log,
	}
}

// Headlines returns articles for the query and whether they came from cache.
func (s *Service) Headlines(ctx context.Context, q Query) ([]models.Article, bool, error) {
	const op = "news.Headlines"

	key := q.CacheKey()

	cached, err := s.cache.News(ctx, key)
	if err == nil {
		metrics.RecordNewsCache(true)
		return cached, true, nil
	}
	metrics.RecordNewsCache(false)

	articles, err := s.client.Fetch(ctx, q)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.SaveNews(ctx, key, articles); err != nil {
		s.log.Warn("failed to cache news response", sl.Err(err))
	}

	return articles, false, nil
}
