// Package user wraps the read-only customer listing.
package user

import (
	"context"

	"backoffice/api"
	"backoffice/domain/shared"
	domain "backoffice/domain/user"
)

const listPath = "/api/users/all"

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context, params api.ListParams, filter domain.ListFilter) (shared.Page[domain.User], error) {
	path := api.NewListQuery(params).String("phone_number", filter.PhoneNumber).On(listPath)
	return api.List[domain.User](ctx, a.c, path)
}
