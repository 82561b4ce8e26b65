// Package product wraps /api/products.
package product

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/product"
	"backoffice/domain/shared"
)

const basePath = "/api/products"

// ListFilter Filters of GET /api/products
type ListFilter struct {
	CategoryID int64
}

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context, params api.ListParams, filter ListFilter) (shared.Page[domain.Product], error) {
	path := api.NewListQuery(params).Int("category_id", filter.CategoryID).On(basePath)
	return api.List[domain.Product](ctx, a.c, path)
}

func (a *API) Get(ctx context.Context, id int64) (domain.Product, error) {
	return api.One[domain.Product](ctx, a.c, http.MethodGet, api.ByID(basePath, id), nil)
}

func (a *API) Create(ctx context.Context, in domain.Input) (domain.Product, error) {
	return api.One[domain.Product](ctx, a.c, http.MethodPost, basePath, in)
}

// Update replaces the product wholesale.
func (a *API) Update(ctx context.Context, id int64, in domain.Input) (domain.Product, error) {
	return api.One[domain.Product](ctx, a.c, http.MethodPut, api.ByID(basePath, id), in)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, a.c, api.ByID(basePath, id))
}
