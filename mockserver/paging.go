package mockserver

import (
	"strconv"
	"strings"

	"backoffice/domain/shared"
	"backoffice/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 30
	maxLimit     = 200
)

type listQuery struct {
	page  int
	limit int
	q     string
}

func parseListQuery(c *gin.Context) listQuery {
	lq := listQuery{
		page:  atoiOr(c.Query("page"), defaultPage),
		limit: atoiOr(c.Query("limit"), defaultLimit),
		q:     strings.ToLower(strings.TrimSpace(c.Query("q"))),
	}
	if lq.page < 1 {
		lq.page = defaultPage
	}
	if lq.limit < 1 {
		lq.limit = defaultLimit
	}
	if lq.limit > maxLimit {
		lq.limit = maxLimit
	}
	return lq
}

// matches reports whether any of fields contains the search term.
func (lq listQuery) matches(fields ...string) bool {
	if lq.q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lq.q) {
			return true
		}
	}
	return false
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// paginate cuts one page out of items. The returned slice is a copy.
func paginate[T any](items []T, lq listQuery) ([]T, shared.PaginationMeta) {
	meta := shared.NewPaginationMeta(lq.page, lq.limit, len(items))
	start := (lq.page - 1) * lq.limit
	if start > len(items) {
		start = len(items)
	}
	end := min(start+lq.limit, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, meta
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func indexOf[T any](items []T, key func(T) int64, id int64) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation(map[string]string{"id": "must be a positive integer"})
	}
	return id, nil
}

// parseIDs reads a comma separated id list such as parent_ids=1,2,3.
func parseIDs(raw string) (map[int64]bool, error) {
	ids := map[int64]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Validation(map[string]string{"parent_ids": "must be a comma separated list of ids"})
		}
		ids[id] = true
	}
	return ids, nil
}

func notFound(kind string, id int64) error {
	return errors.New(errors.CodeNotFound, kind+" "+strconv.FormatInt(id, 10)+" not found")
}
