package infra_tmdb

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

	"github.com/humanbelnik/movieparty/internal/config"
	"github.com/humanbelnik/movieparty/internal/model"
	usecase_session "github.com/humanbelnik/movieparty/internal/usecase/session"
	"golang.org/x/text/language"
)

const (
	// MaxResults caps a search at the first twelve movies of the first page.
	MaxResults = 12

	minYear = 1874
	maxYear = 2200
)

type Client struct {
	baseURL       string
	apiKey        string
	genreLanguage string
	httpClient    *http.Client
	logger        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

func New(cfg config.TMDB, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	genreLanguage := cfg.GenreLanguage
	if genreLanguage == "" {
		genreLanguage = "en-US"
	}

	c := &Client{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		genreLanguage: genreLanguage,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type discoverResponse struct {
	Results []model.Movie `json:"results"`
}

type genresResponse struct {
	Genres []model.Genre `json:"genres"`
}

// Search runs one discover query ordered by popularity. Unset filter fields are
// left out of the query.
func (c *Client) Search(ctx context.Context, filters model.Filters) ([]model.Movie, error) {
	query, err := discoverQuery(filters)
	if err != nil {
		return nil, err
	}

	var resp discoverResponse
	if err := c.get(ctx, "/discover/movie", query, &resp); err != nil {
		return nil, err
	}

	movies := resp.Results
	if len(movies) > MaxResults {
		movies = movies[:MaxResults]
	}
	c.logger.Debug("catalog search", "filters", filters, "results", len(movies))
	return movies, nil
}

func (c *Client) ListGenres(ctx context.Context) (model.Genres, error) {
	query := url.Values{}
	query.Set("language", c.genreLanguage)

	var resp genresResponse
	if err := c.get(ctx, "/genre/movie/list", query, &resp); err != nil {
		return nil, err
	}

	genres := make(model.Genres, len(resp.Genres))
	for _, g := range resp.Genres {
		genres[g.ID] = g.Name
	}
	return genres, nil
}

func discoverQuery(filters model.Filters) (url.Values, error) {
	query := url.Values{}

	if filters.GenreID < 0 {
		return nil, fmt.Errorf("%w: genre %d", usecase_session.ErrInvalidFilter, filters.GenreID)
	}
	if filters.GenreID > 0 {
		query.Set("with_genres", strconv.Itoa(filters.GenreID))
	}

	if filters.Year != 0 && (filters.Year < minYear || filters.Year > maxYear) {
		return nil, fmt.Errorf("%w: year %d", usecase_session.ErrInvalidFilter, filters.Year)
	}
	if filters.Year != 0 {
		query.Set("primary_release_year", strconv.Itoa(filters.Year))
	}

	if filters.Language != "" {
		tag, err := language.Parse(filters.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q", usecase_session.ErrInvalidFilter, filters.Language)
		}
		query.Set("language", tag.String())
	}

	query.Set("sort_by", "popularity.desc")
	query.Set("page", "1")
	return query, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", usecase_session.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", usecase_session.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("catalog request failed", "path", path, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: %s returned %d", usecase_session.ErrCatalogUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", usecase_session.ErrCatalogUnavailable, path, err)
	}
	return nil
}
