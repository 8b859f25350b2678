package artwork

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mpetrenko/museum-weather-dashboard/internal/artwork/met"
)

// Catalog is the slice of the museum API the service depends on.
type Catalog interface {
	SearchObjects(ctx context.Context, q met.SearchQuery) ([]int, error)
	GetObject(ctx context.Context, id int) (*met.ObjectDetail, error)
	Departments(ctx context.Context) ([]met.Department, error)
}

const departmentsCacheKey = "departments"

// Service runs the artwork pipeline: build the search query, retrieve a
// bounded candidate list, fetch each candidate's detail and keep only the
// records that survive validation.
type Service struct {
	catalog      Catalog
	cache        *cache.Cache
	defaultLimit int
	maxLimit     int
	deptTTL      time.Duration
}

// NewService creates a new Service. defaultLimit applies when a query carries
// no limit; maxLimit caps what a caller may request.
func NewService(catalog Catalog, defaultLimit, maxLimit int, resultTTL, deptTTL time.Duration) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 12
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Service{
		catalog:      catalog,
		cache:        cache.New(resultTTL, 2*resultTTL),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		deptTTL:      deptTTL,
	}
}

// Query is a user-supplied artwork search.
type Query struct {
	Keyword       string
	DepartmentID  int
	HighlightOnly bool
	Limit         int
}

func (q Query) normalized(defaultLimit, maxLimit int) Query {
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

func (q Query) cacheKey() string {
	return fmt.Sprintf("search:%s:%d:%t:%d", q.Keyword, q.DepartmentID, q.HighlightOnly, q.Limit)
}

// Search runs the full pipeline. Per-candidate fetch failures and records
// failing validation are dropped silently; the batch continues. An empty or
// malformed identifier list yields an empty result, not an error.
func (s *Service) Search(ctx context.Context, q Query) (*SearchResult, error) {
	q = q.normalized(s.defaultLimit, s.maxLimit)

	if v, ok := s.cache.Get(q.cacheKey()); ok {
		return v.(*SearchResult), nil
	}

	ids, err := s.catalog.SearchObjects(ctx, met.SearchQuery{
		Keyword:       q.Keyword,
		DepartmentID:  q.DepartmentID,
		HighlightOnly: q.HighlightOnly,
	})
	if err != nil {
		return nil, err
	}

	if len(ids) > q.Limit {
		ids = ids[:q.Limit]
	}

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		detail, err := s.catalog.GetObject(ctx, id)
		if err != nil {
			// Drop this candidate and keep going; a single bad object
			// must not sink the batch.
			log.Printf("artwork %d detail fetch failed: %v", id, err)
			continue
		}

		if record, ok := normalize(id, detail); ok {
			records = append(records, record)
		}
	}

	result := &SearchResult{
		Query:    q.Keyword,
		Count:    len(records),
		Artworks: records,
		Eras:     TopEras(records, 10),
	}
	s.cache.Set(q.cacheKey(), result, cache.DefaultExpiration)
	return result, nil
}

// Departments returns the collection departments for the filter widget,
// cached for a long interval since the list is effectively static.
func (s *Service) Departments(ctx context.Context) ([]met.Department, error) {
	if v, ok := s.cache.Get(departmentsCacheKey); ok {
		return v.([]met.Department), nil
	}

	departments, err := s.catalog.Departments(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(departmentsCacheKey, departments, s.deptTTL)
	return departments, nil
}

// normalize converts a raw detail into a Record. A candidate is kept only if
// title, artist and primary image are all non-empty; the object date defaults
// to "Unknown" when absent.
func normalize(id int, detail *met.ObjectDetail) (Record, bool) {
	if detail.Title == "" || detail.ArtistDisplayName == "" || detail.PrimaryImage == "" {
		return Record{}, false
	}

	date := detail.ObjectDate
	if date == "" {
		date = "Unknown"
	}

	return Record{
		ID:             id,
		Title:          detail.Title,
		Artist:         detail.ArtistDisplayName,
		Date:           date,
		Classification: detail.Classification,
		ImageURL:       detail.PrimaryImage,
	}, true
}
