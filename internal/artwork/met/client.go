package met

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/mpetrenko/museum-weather-dashboard/internal/httpx"
)

// DefaultBaseURL is the Metropolitan Museum of Art open collection API.
// No API key is required.
const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// ClientConfig tunes the outbound behaviour of the collection client.
type ClientConfig struct {
	BaseURL        string
	RequestsPerSec int
	MaxRetries     int
	SearchTimeout  time.Duration
	DetailTimeout  time.Duration
}

// Client talks to the MET collection API: keyword search returns candidate
// object IDs, each of which is fetched individually for its detail record.
type Client struct {
	baseURL       string
	httpCfg       httpx.Config
	limiter       *rate.Limiter
	circuit       *gobreaker.CircuitBreaker
	searchTimeout time.Duration
	detailTimeout time.Duration
}

func NewClient(client *http.Client, cfg ClientConfig) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "met-collection",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 4
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 10 * time.Second
	}
	if cfg.DetailTimeout <= 0 {
		cfg.DetailTimeout = 8 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpCfg: httpx.Config{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      cfg.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		limiter:       rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RequestsPerSec)), 1),
		circuit:       cb,
		searchTimeout: cfg.SearchTimeout,
		detailTimeout: cfg.DetailTimeout,
	}
}

// SearchQuery is a keyword search with optional filters.
type SearchQuery struct {
	Keyword       string
	DepartmentID  int // 0 = any department
	HighlightOnly bool
}

// ObjectDetail is the slice of a MET object record the dashboard consumes.
// Most fields are optional upstream; validation happens in the normalizer.
type ObjectDetail struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	PrimaryImage      string `json:"primaryImage"`
	Classification    string `json:"classification"`
	Department        string `json:"department"`
}

// Department is one collection department, used for the search filter.
type Department struct {
	DepartmentID int    `json:"departmentId"`
	DisplayName  string `json:"displayName"`
}

// SearchObjects returns candidate object IDs for the query. A null or
// non-sequence objectIDs field is treated as an empty result, not an error;
// upstream returns null for zero hits.
func (c *Client) SearchObjects(ctx context.Context, q SearchQuery) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	values := url.Values{}
	values.Set("q", q.Keyword)
	values.Set("hasImages", "true")
	values.Set("isHighlight", strconv.FormatBool(q.HighlightOnly))
	if q.DepartmentID > 0 {
		values.Set("departmentId", strconv.Itoa(q.DepartmentID))
	}

	var payload struct {
		Total     int             `json:"total"`
		ObjectIDs json.RawMessage `json:"objectIDs"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, values.Encode()), &payload); err != nil {
		return nil, err
	}

	if len(payload.ObjectIDs) == 0 || string(payload.ObjectIDs) == "null" {
		return nil, nil
	}

	var ids []int
	if err := json.Unmarshal(payload.ObjectIDs, &ids); err != nil {
		// Malformed objectIDs shape; degrade to empty rather than failing
		// the whole render.
		return nil, nil
	}
	return ids, nil
}

// GetObject fetches a single object's detail record.
func (c *Client) GetObject(ctx context.Context, id int) (*ObjectDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, c.detailTimeout)
	defer cancel()

	var detail ObjectDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s/objects/%d", c.baseURL, id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Departments lists the collection departments.
func (c *Client) Departments(ctx context.Context) ([]Department, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	var payload struct {
		Departments []Department `json:"departments"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/departments", &payload); err != nil {
		return nil, err
	}
	return payload.Departments, nil
}

func (c *Client) getJSON(ctx context.Context, u string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
