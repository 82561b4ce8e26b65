// Package configuration wraps the store settings singleton at /api/configurations.
package configuration

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/configuration"
)

const basePath = "/api/configurations"

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) Get(ctx context.Context) (domain.Configuration, error) {
	return api.One[domain.Configuration](ctx, a.c, http.MethodGet, basePath, nil)
}

func (a *API) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Configuration, error) {
	return api.One[domain.Configuration](ctx, a.c, http.MethodPatch, api.ByID(basePath, id), patch)
}
