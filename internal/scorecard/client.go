// Package scorecard implements the search collaborator against the College
// Scorecard API, its Elasticsearch mirror and a Redis page cache.
package scorecard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	httpclient "admission-workers/internal/common/http"
	"admission-workers/internal/models"
)

const (
	DefaultBaseURL = "https://api.data.gov/ed/collegescorecard/v1/schools"
	DefaultTimeout = 30 * time.Second

	// BackendAPI and BackendIndex label metrics and logs.
	BackendAPI   = "scorecard"
	BackendIndex = "elasticsearch"
)

var ErrMissingAPIKey = errors.New("scorecard api key is not configured")

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client queries the public Scorecard API. It is safe for concurrent use.
type Client struct {
	config Config
	http   *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		config: cfg,
		http:   httpclient.NewClient(cfg.Timeout),
	}, nil
}

type apiResponse struct {
	Metadata struct {
		Total   int `json:"total"`
		Page    int `json:"page"`
		PerPage int `json:"per_page"`
	} `json:"metadata"`
	Results []json.RawMessage `json:"results"`
}

// Search fetches one page. A title keyword is applied to the returned page
// locally, so a filtered page can come back short.
func (c *Client) Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error) {
	var resp apiResponse
	if err := c.http.GetJSON(ctx, c.config.BaseURL, c.params(q), &resp); err != nil {
		return nil, err
	}

	records := make([]models.InstitutionRecord, 0, len(resp.Results))
	for i, raw := range resp.Results {
		rec, err := DecodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return &models.SearchPage{
		Results: FilterByTitle(records, q.TitleKeyword),
		Total:   resp.Metadata.Total,
	}, nil
}

func (c *Client) params(q models.SearchQuery) url.Values {
	v := url.Values{}
	v.Set("api_key", c.config.APIKey)
	v.Set("per_page", strconv.Itoa(models.PageSize))
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("fields", strings.Join(Fields, ","))

	loc := q.Location
	switch loc.Mode {
	case models.LocationState:
		v.Set(FieldState, strings.ToUpper(loc.State))
	case models.LocationCity:
		v.Set(FieldState, strings.ToUpper(loc.State))
		v.Set(FieldCity, loc.City)
	case models.LocationZip:
		v.Set("zip", loc.ZipCode)
		v.Set("distance", loc.Radius)
	}

	if q.Code != nil {
		v.Set(FieldProgramCode, q.Code.String())
	}
	return v
}
