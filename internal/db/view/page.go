package view

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest reads page and limit from query string values. Missing,
// non-numeric or non-positive values fall back to the defaults. Limit is
// capped at MaxLimit and page at MaxPage.
func ParsePageRequest(page, limit string) PageRequest {
	req := PageRequest{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		req.Page = min(n, MaxPage)
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		req.Limit = min(n, MaxLimit)
	}
	return req
}

// Offset is the number of rows skipped before this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Labels rename the items and total fields of a serialized Page.
type Labels struct {
	Items string
	Total string
}

var (
	DefaultLabels = Labels{Items: "docs", Total: "totalDocs"}
	VideoLabels   = Labels{Items: "videos", Total: "totalVideos"}
	CommentLabels = Labels{Items: "comments", Total: "totalComments"}
	TweetLabels   = Labels{Items: "tweets", Total: "totalTweets"}
)

// Page is one page of a listing plus paging metadata.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	Limit      int
	PageCount  int
	Labels     Labels
}

// NewPage computes the paging metadata for items fetched with req.
func NewPage[T any](items []T, total int64, req PageRequest, labels Labels) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return &Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		Limit:      req.Limit,
		PageCount:  pages,
		Labels:     labels,
	}
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, U any](p *Page[T], f func(T) U) *Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, f(it))
	}
	return &Page[U]{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		Limit:      p.Limit,
		PageCount:  p.PageCount,
		Labels:     p.Labels,
	}
}

func (p *Page[T]) HasPrev() bool { return p.Page > 1 }
func (p *Page[T]) HasNext() bool { return p.Page < p.PageCount }

// MarshalJSON writes the page using its labels for the items and total keys.
func (p *Page[T]) MarshalJSON() ([]byte, error) {
	labels := p.Labels
	if labels.Items == "" {
		labels = DefaultLabels
	}

	var prev, next *int
	if p.HasPrev() {
		n := p.Page - 1
		prev = &n
	}
	if p.HasNext() {
		n := p.Page + 1
		next = &n
	}

	return json.Marshal(map[string]any{
		labels.Items:            p.Items,
		labels.Total:            p.TotalCount,
		"limit":                 p.Limit,
		"page":                  p.Page,
		"totalPages":            p.PageCount,
		"serialNumberStartFrom": (p.Page-1)*p.Limit + 1,
		"hasPrevPage":           p.HasPrev(),
		"hasNextPage":           p.HasNext(),
		"prevPage":              prev,
		"nextPage":              next,
	})
}

// Paginate runs the count and the page fetch of q concurrently. dbq must be
// safe for concurrent use, so pass a pool rather than a transaction.
func Paginate[T any](ctx context.Context, dbq db.Querier, q *Query, req PageRequest, scan pgx.RowToFunc[T], labels Labels) (*Page[T], error) {
	var (
		total int64
		items []T
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, args := q.SQL()
		if err := dbq.QueryRow(gctx, q.countSQL(), args...).Scan(&total); err != nil {
			return db.WrapError(err, "count page")
		}
		return nil
	})

	g.Go(func() error {
		sql, args := q.SQL()
		n := len(args)
		sql = fmt.Sprintf("%s LIMIT $%d OFFSET $%d", sql, n+1, n+2)
		args = append(args[:n:n], req.Limit, req.Offset())

		rows, err := dbq.Query(gctx, sql, args...)
		if err != nil {
			return db.WrapError(err, "fetch page")
		}
		items, err = pgx.CollectRows(rows, scan)
		if err != nil {
			return db.WrapError(err, "fetch page")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewPage(items, total, req, labels), nil
}
