package usecase

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

const (
	DefaultSortField = "createdAt"
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100

	// maxPage keeps the computed offset well inside int range.
	maxPage = 1 << 20
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// BuildBlogQuery turns listing query parameters into a BlogQuery.
// It does not touch storage.
func BuildBlogQuery(params url.Values) (*domain.BlogQuery, error) {
	q := &domain.BlogQuery{
		SortField:     DefaultSortField,
		SortDirection: domain.SortAscending,
	}

	if sortBy := strings.TrimSpace(params.Get("sortBy")); sortBy != "" {
		q.SortField = sortBy
	}
	if strings.EqualFold(strings.TrimSpace(params.Get("order")), "desc") {
		q.SortDirection = domain.SortDescending
	}

	if category := params.Get("category"); category != "" {
		q.Filter.Category = &category
	}

	if raw := params.Get("startDate"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		q.Filter.CreatedFrom = &from
	}
	if raw := params.Get("endDate"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		q.Filter.CreatedTo = &to
	}

	q.Page = positiveInt(params.Get("page"), DefaultPage)
	if q.Page > maxPage {
		q.Page = maxPage
	}
	q.Limit = positiveInt(params.Get("limit"), DefaultLimit)
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Skip = (q.Page - 1) * q.Limit

	return q, nil
}

// parseDate accepts a calendar date or a timestamp. A bare date used as an
// upper bound is not widened to the end of that day.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// totalPages is ceil(total/limit), zero when nothing matched.
func totalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
