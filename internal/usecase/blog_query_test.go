package usecase

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

func TestBuildBlogQuery_Defaults(t *testing.T) {
	q, err := BuildBlogQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, "createdAt", q.SortField)
	assert.Equal(t, domain.SortAscending, q.SortDirection)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Skip)
	assert.Nil(t, q.Filter.Category)
	assert.Nil(t, q.Filter.CreatedFrom)
	assert.Nil(t, q.Filter.CreatedTo)
}

func TestBuildBlogQuery_Paging(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       string
		wantPage, wantLim int
		wantSkip          int
	}{
		{"explicit", "3", "20", 3, 20, 40},
		{"non numeric", "abc", "xyz", 1, 10, 0},
		{"zero", "0", "0", 1, 10, 0},
		{"negative", "-2", "-5", 1, 10, 0},
		{"limit capped", "2", "500", 2, 100, 100},
		{"page capped", "99999999999", "1", maxPage, 1, maxPage - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := BuildBlogQuery(url.Values{"page": {tt.page}, "limit": {tt.limit}})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLim, q.Limit)
			assert.Equal(t, tt.wantSkip, q.Skip)
		})
	}
}

func TestBuildBlogQuery_Sort(t *testing.T) {
	q, err := BuildBlogQuery(url.Values{"sortBy": {"title"}, "order": {"DESC"}})
	require.NoError(t, err)
	assert.Equal(t, "title", q.SortField)
	assert.Equal(t, domain.SortDescending, q.SortDirection)

	q, err = BuildBlogQuery(url.Values{"sortBy": {"invalidField"}, "order": {"sideways"}})
	require.NoError(t, err)
	assert.Equal(t, "invalidField", q.SortField)
	assert.Equal(t, domain.SortAscending, q.SortDirection)
}

func TestBuildBlogQuery_Filters(t *testing.T) {
	q, err := BuildBlogQuery(url.Values{
		"category":  {"DSA"},
		"startDate": {"2024-01-01"},
		"endDate":   {"2024-02-01T10:30:00Z"},
	})
	require.NoError(t, err)

	require.NotNil(t, q.Filter.Category)
	assert.Equal(t, "DSA", *q.Filter.Category)
	require.NotNil(t, q.Filter.CreatedFrom)
	assert.True(t, q.Filter.CreatedFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, q.Filter.CreatedTo)
	assert.True(t, q.Filter.CreatedTo.Equal(time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)))

	q, err = BuildBlogQuery(url.Values{"endDate": {"2024-03-05T08:00:00"}})
	require.NoError(t, err)
	assert.Nil(t, q.Filter.CreatedFrom)
	assert.True(t, q.Filter.CreatedTo.Equal(time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)))
}

func TestBuildBlogQuery_InvalidDate(t *testing.T) {
	for _, params := range []url.Values{
		{"startDate": {"yesterday"}},
		{"endDate": {"2024-13-01"}},
		{"startDate": {"2024-01-01"}, "endDate": {"01/02/2024"}},
	} {
		q, err := BuildBlogQuery(params)

		assert.Nil(t, q)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 15, totalPages(15, 1))
	assert.Equal(t, 0, totalPages(5, 0))
}
