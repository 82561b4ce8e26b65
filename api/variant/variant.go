// Package variant wraps /api/variants.
package variant

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/product"
)

const basePath = "/api/variants"

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) Create(ctx context.Context, in domain.VariantInput) (domain.Variant, error) {
	return api.One[domain.Variant](ctx, a.c, http.MethodPost, basePath, in)
}

// Update replaces the variant wholesale.
func (a *API) Update(ctx context.Context, id int64, in domain.VariantInput) (domain.Variant, error) {
	return api.One[domain.Variant](ctx, a.c, http.MethodPut, api.ByID(basePath, id), in)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, a.c, api.ByID(basePath, id))
}
