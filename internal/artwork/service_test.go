package artwork

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/museum-weather-dashboard/internal/artwork/met"
)

// fakeCatalog stands in for the MET client.
type fakeCatalog struct {
	ids       []int
	searchErr error

	details     map[int]*met.ObjectDetail
	failIDs     map[int]bool
	fetchedIDs  []int
	departments []met.Department
}

func (f *fakeCatalog) SearchObjects(ctx context.Context, q met.SearchQuery) ([]int, error) {
	return f.ids, f.searchErr
}

func (f *fakeCatalog) GetObject(ctx context.Context, id int) (*met.ObjectDetail, error) {
	f.fetchedIDs = append(f.fetchedIDs, id)
	if f.failIDs[id] {
		return nil, errors.New("boom")
	}
	d, ok := f.details[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func (f *fakeCatalog) Departments(ctx context.Context) ([]met.Department, error) {
	return f.departments, nil
}

func detail(id int, title, artist, image string) *met.ObjectDetail {
	return &met.ObjectDetail{
		ObjectID:          id,
		Title:             title,
		ArtistDisplayName: artist,
		ObjectDate:        "1850-1860",
		PrimaryImage:      image,
	}
}

func newTestService(catalog Catalog) *Service {
	return NewService(catalog, 12, 50, time.Minute, time.Hour)
}

// A single failing detail fetch drops that candidate only; the batch
// continues and the surviving records keep their original order.
func TestSearchSkipsFailedCandidates(t *testing.T) {
	catalog := &fakeCatalog{
		ids: []int{1, 2, 3},
		details: map[int]*met.ObjectDetail{
			1: detail(1, "One", "Artist A", "https://img/1.jpg"),
			3: detail(3, "Three", "Artist C", "https://img/3.jpg"),
		},
		failIDs: map[int]bool{2: true},
	}

	result, err := newTestService(catalog).Search(context.Background(), Query{Keyword: "flower"})
	require.NoError(t, err)

	require.Len(t, result.Artworks, 2)
	assert.Equal(t, 1, result.Artworks[0].ID)
	assert.Equal(t, 3, result.Artworks[1].ID)
	assert.Equal(t, 2, result.Count)
}

// A detail without a primary image is excluded regardless of its other fields.
func TestSearchDropsRecordsWithoutImage(t *testing.T) {
	noImage := detail(2, "Two", "Artist B", "")
	catalog := &fakeCatalog{
		ids: []int{1, 2},
		details: map[int]*met.ObjectDetail{
			1: detail(1, "One", "Artist A", "https://img/1.jpg"),
			2: noImage,
		},
	}

	result, err := newTestService(catalog).Search(context.Background(), Query{Keyword: "flower"})
	require.NoError(t, err)

	require.Len(t, result.Artworks, 1)
	assert.Equal(t, 1, result.Artworks[0].ID)
}

func TestSearchEmptyIdentifiers(t *testing.T) {
	result, err := newTestService(&fakeCatalog{ids: nil}).Search(context.Background(), Query{Keyword: "nothing"})
	require.NoError(t, err)

	assert.Zero(t, result.Count)
	assert.Empty(t, result.Artworks)
}

func TestSearchBoundsCandidates(t *testing.T) {
	ids := make([]int, 40)
	details := make(map[int]*met.ObjectDetail, 40)
	for i := range ids {
		ids[i] = i + 1
		details[i+1] = detail(i+1, "T", "A", "https://img.jpg")
	}
	catalog := &fakeCatalog{ids: ids, details: details}

	result, err := newTestService(catalog).Search(context.Background(), Query{Keyword: "cat", Limit: 5})
	require.NoError(t, err)

	assert.Len(t, catalog.fetchedIDs, 5)
	assert.Len(t, result.Artworks, 5)
}

func TestSearchPropagatesSearchFailure(t *testing.T) {
	catalog := &fakeCatalog{searchErr: errors.New("upstream down")}

	_, err := newTestService(catalog).Search(context.Background(), Query{Keyword: "cat"})
	assert.Error(t, err)
}

func TestSearchDefaultsDate(t *testing.T) {
	d := detail(1, "One", "Artist A", "https://img/1.jpg")
	d.ObjectDate = ""
	catalog := &fakeCatalog{ids: []int{1}, details: map[int]*met.ObjectDetail{1: d}}

	result, err := newTestService(catalog).Search(context.Background(), Query{Keyword: "cat"})
	require.NoError(t, err)

	require.Len(t, result.Artworks, 1)
	assert.Equal(t, "Unknown", result.Artworks[0].Date)
}

// Identical queries within the cache TTL are served without refetching.
func TestSearchCachesResults(t *testing.T) {
	catalog := &fakeCatalog{
		ids:     []int{1},
		details: map[int]*met.ObjectDetail{1: detail(1, "One", "Artist A", "https://img/1.jpg")},
	}
	svc := newTestService(catalog)

	_, err := svc.Search(context.Background(), Query{Keyword: "cat"})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), Query{Keyword: "cat"})
	require.NoError(t, err)

	assert.Len(t, catalog.fetchedIDs, 1)
}
