// Package coupon wraps /api/coupons.
package coupon

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/coupon"
	"backoffice/domain/shared"
)

const basePath = "/api/coupons"

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context, params api.ListParams) (shared.Page[domain.Coupon], error) {
	return api.List[domain.Coupon](ctx, a.c, api.NewListQuery(params).On(basePath))
}

func (a *API) Get(ctx context.Context, id int64) (domain.Coupon, error) {
	return api.One[domain.Coupon](ctx, a.c, http.MethodGet, api.ByID(basePath, id), nil)
}

// Create sends in as given; callers normalise first.
func (a *API) Create(ctx context.Context, in domain.Input) (domain.Coupon, error) {
	return api.One[domain.Coupon](ctx, a.c, http.MethodPost, basePath, in)
}

func (a *API) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Coupon, error) {
	return api.One[domain.Coupon](ctx, a.c, http.MethodPatch, api.ByID(basePath, id), patch)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, a.c, api.ByID(basePath, id))
}
