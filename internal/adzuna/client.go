package adzuna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matheus/jobmatch/internal/config"
)

// ErrSearchFailed wraps every transport and decoding failure of the search
// proxy, so callers handle one error category.
var ErrSearchFailed = errors.New("job search failed")

// SearchRequest carries one search attempt. The fallback cascade mutates
// What and Category across attempts within a logical search.
type SearchRequest struct {
	What           string
	Where          string
	Category       string
	Page           int
	ResultsPerPage int
}

// Job is a listing passed through from the provider mostly untouched.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string   `json:"display_name"`
		Area        []string `json:"area"`
	} `json:"location"`
	Category struct {
		Tag   string `json:"tag"`
		Label string `json:"label"`
	} `json:"category"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
}

type SearchResponse struct {
	Results []Job   `json:"results"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
}

// Client talks to the Adzuna search API for one configured country.
type Client struct {
	baseURL    string
	country    string
	appID      string
	appKey     string
	httpClient *http.Client
}

func NewClient(cfg config.AdzunaConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		country:    cfg.Country,
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Search issues one GET against the provider. The body is read fully and
// decoded from raw bytes: the provider's charset header is unreliable, the
// payload itself is UTF-8. No retries happen here.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.ResultsPerPage
	if perPage < 1 {
		perPage = 20
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", strconv.Itoa(perPage))
	if req.What != "" {
		params.Set("what", req.What)
	}
	if req.Where != "" {
		params.Set("where", req.Where)
	}
	if req.Category != "" {
		params.Set("category", req.Category)
	}

	endpoint := fmt.Sprintf("%s/%s/search/%d?%s", c.baseURL, c.country, page, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrSearchFailed, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrSearchFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %d: %s", ErrSearchFailed, resp.StatusCode, truncate(body, 200))
	}

	var out SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSearchFailed, err)
	}
	if out.Results == nil {
		out.Results = []Job{}
	}
	return &out, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
