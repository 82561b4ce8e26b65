package api

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 30
)

// ListParams Paging and free-text search shared by every list endpoint
type ListParams struct {
	Page     int
	PageSize int
	Q        string
}

// Normalize fills in page 1 and the default page size.
func (p ListParams) Normalize() ListParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	p.Q = strings.TrimSpace(p.Q)
	return p
}

// Query builds a query string in insertion order. url.Values sorts its keys,
// and list endpoints are expected to see page and limit first.
type Query struct {
	parts []string
}

// NewListQuery starts a query with page, limit and, when not blank, q.
func NewListQuery(p ListParams) *Query {
	p = p.Normalize()
	q := &Query{}
	q.Int("page", int64(p.Page))
	q.Int("limit", int64(p.PageSize))
	q.String("q", p.Q)
	return q
}

// String adds key=value unless value is blank.
func (q *Query) String(key, value string) *Query {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	q.parts = append(q.parts, escape(key)+"="+escape(value))
	return q
}

// Int adds key=value unless value is zero.
func (q *Query) Int(key string, value int64) *Query {
	if value == 0 {
		return q
	}
	q.parts = append(q.parts, escape(key)+"="+strconv.FormatInt(value, 10))
	return q
}

// Ints adds one comma-joined key, never repeated keys. Empty slices are skipped.
func (q *Query) Ints(key string, values []int64) *Query {
	if len(values) == 0 {
		return q
	}
	ids := make([]string, len(values))
	for i, v := range values {
		ids[i] = strconv.FormatInt(v, 10)
	}
	q.parts = append(q.parts, escape(key)+"="+strings.Join(ids, ","))
	return q
}

// Raw appends a fixed, already-encoded fragment such as sort_by=priority.
func (q *Query) Raw(fragment string) *Query {
	if fragment != "" {
		q.parts = append(q.parts, fragment)
	}
	return q
}

func (q *Query) Encode() string {
	return strings.Join(q.parts, "&")
}

// On returns path with the query attached.
func (q *Query) On(path string) string {
	if len(q.parts) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// escape is encodeURIComponent-style: spaces become %20, not +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
