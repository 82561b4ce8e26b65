// Package category wraps /api/categories.
package category

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/category"
	"backoffice/domain/shared"
)

const (
	basePath = "/api/categories"

	// Categories are always listed highest priority first.
	prioritySort = "sort_by=priority&sort_order=DESC"
)

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context, params api.ListParams) (shared.Page[domain.Category], error) {
	path := api.NewListQuery(params).Raw(prioritySort).On(basePath)
	return api.List[domain.Category](ctx, a.c, path)
}

func (a *API) Get(ctx context.Context, id int64) (domain.Category, error) {
	return api.One[domain.Category](ctx, a.c, http.MethodGet, api.ByID(basePath, id), nil)
}

func (a *API) Create(ctx context.Context, in domain.Input) (domain.Category, error) {
	return api.One[domain.Category](ctx, a.c, http.MethodPost, basePath, in)
}

func (a *API) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Category, error) {
	return api.One[domain.Category](ctx, a.c, http.MethodPatch, api.ByID(basePath, id), patch)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, a.c, api.ByID(basePath, id))
}
