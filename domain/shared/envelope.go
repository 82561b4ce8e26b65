/*
Package shared holds the wire shapes every resource shares: the response
envelope and its pagination metadata.
*/
package shared

import "encoding/json"

// Envelope is the {success, message, data, meta?} wrapper of every API response.
type Envelope[T any] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

// Succeeded and Msg let the HTTP client check success=false without knowing T.
func (e *Envelope[T]) Succeeded() bool { return e.Success }
func (e *Envelope[T]) Msg() string     { return e.Message }

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items      []T
	Pagination *PaginationMeta
}

// PaginationMeta accompanies every list response.
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// UnmarshalJSON accepts both the "limit" and the "pageSize" spelling.
func (m *PaginationMeta) UnmarshalJSON(b []byte) error {
	var raw struct {
		Page       int  `json:"page"`
		Limit      *int `json:"limit"`
		PageSize   *int `json:"pageSize"`
		TotalItems int  `json:"totalItems"`
		TotalPages int  `json:"totalPages"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.Page = raw.Page
	m.TotalItems = raw.TotalItems
	m.TotalPages = raw.TotalPages
	switch {
	case raw.Limit != nil:
		m.PageSize = *raw.Limit
	case raw.PageSize != nil:
		m.PageSize = *raw.PageSize
	default:
		m.PageSize = 0
	}
	return nil
}

// NewPaginationMeta computes totalPages the way the backend does.
func NewPaginationMeta(page, pageSize, totalItems int) PaginationMeta {
	if pageSize <= 0 {
		pageSize = 30
	}
	if page <= 0 {
		page = 1
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: (totalItems + pageSize - 1) / pageSize,
	}
}

// Timestamps are carried by most records.
type Timestamps struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
