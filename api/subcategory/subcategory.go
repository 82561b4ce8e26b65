// Package subcategory wraps /api/sub-categories.
package subcategory

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/category"
	"backoffice/domain/shared"
)

const basePath = "/api/sub-categories"

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context, params api.ListParams) (shared.Page[domain.SubCategory], error) {
	return api.List[domain.SubCategory](ctx, a.c, api.NewListQuery(params).On(basePath))
}

// ListByParents sends the ids as one comma-joined parent_ids parameter.
func (a *API) ListByParents(ctx context.Context, parentIDs []int64) ([]domain.SubCategory, error) {
	page, err := api.List[domain.SubCategory](ctx, a.c, (&api.Query{}).Ints("parent_ids", parentIDs).On(basePath))
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (a *API) Get(ctx context.Context, id int64) (domain.SubCategory, error) {
	return api.One[domain.SubCategory](ctx, a.c, http.MethodGet, api.ByID(basePath, id), nil)
}

func (a *API) Create(ctx context.Context, in domain.SubInput) (domain.SubCategory, error) {
	return api.One[domain.SubCategory](ctx, a.c, http.MethodPost, basePath, in)
}

func (a *API) Update(ctx context.Context, id int64, patch domain.Patch) (domain.SubCategory, error) {
	return api.One[domain.SubCategory](ctx, a.c, http.MethodPatch, api.ByID(basePath, id), patch)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, a.c, api.ByID(basePath, id))
}
