// internal/app/system/paging/paging.go
package paging

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the default number of rows per page in the admin list.
const PageSize = 50

// MaxPageSize caps the limit a client may ask for.
const MaxPageSize = 100

// SortField is the primary sort key for consultation lists. _id breaks
// ties so rows never repeat or vanish between pages.
const SortField = "createdAt"

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	return parsePositive(query.Get(r, "page"), 1)
}

// ParseLimit extracts the "limit" query parameter, defaulting to PageSize
// and clamping to [1, max]. A max <= 0 means MaxPageSize.
func ParseLimit(r *http.Request, max int) int {
	return ClampLimit(parsePositive(query.Get(r, "limit"), PageSize), max)
}

// ClampLimit bounds limit to [1, max].
func ClampLimit(limit, max int) int {
	if max <= 0 {
		max = MaxPageSize
	}
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

func parsePositive(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Skip returns the number of documents before page. It saturates at
// math.MaxInt64 instead of overflowing for huge page numbers.
func Skip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return 0
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return int64(page-1) * int64(limit)
}

// SortNewestFirst is the stable list order: newest submission first.
func SortNewestFirst() bson.D {
	return bson.D{
		{Key: SortField, Value: -1},
		{Key: "_id", Value: -1},
	}
}

// ApplyToFind sets sort, skip and limit on find for the given page.
func ApplyToFind(find *options.FindOptions, page, limit int) {
	find.SetSort(SortNewestFirst()).
		SetSkip(Skip(page, limit)).
		SetLimit(int64(limit))
}

// TotalPages returns how many pages total rows fill. Zero rows is one
// (empty) page.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// HasNext reports whether rows exist past page.
func HasNext(page, limit int, total int64) bool {
	skip := Skip(page, limit)
	return skip < total && total-skip > int64(limit)
}

// Range holds the 1-based row span shown on a page.
type Range struct {
	Start int // 0 if no results
	End   int // 0 if no results
}

// ComputeRange returns the span of rows shown given page, limit and the
// number of rows actually returned.
func ComputeRange(page, limit, shown int) Range {
	if shown == 0 {
		return Range{}
	}
	start := int(Skip(page, limit)) + 1
	return Range{Start: start, End: start + shown - 1}
}
