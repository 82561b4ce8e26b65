// Package order wraps /api/orders. Status changes go through their own sub-resource.
package order

import (
	"context"
	"fmt"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/order"
	"backoffice/domain/shared"
	apperrors "backoffice/pkg/errors"
)

const (
	listPath = "/api/orders/all"
	basePath = "/api/orders"
)

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context, params api.ListParams, filter domain.ListFilter) (shared.Page[domain.Order], error) {
	path := api.NewListQuery(params).
		String("status", string(filter.Status)).
		String("order_number", filter.OrderNumber).
		String("phone_number", filter.PhoneNumber).
		On(listPath)
	return api.List[domain.Order](ctx, a.c, path)
}

// Get fetches the detail shape, which list responses do not carry.
func (a *API) Get(ctx context.Context, id int64) (domain.OrderDetail, error) {
	return api.One[domain.OrderDetail](ctx, a.c, http.MethodGet, api.ByID(basePath, id), nil)
}

// UpdateStatus sends PATCH /api/orders/:id/status. update must come from
// order.NewStatusUpdate, so only whitelisted transitions reach the network.
func (a *API) UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate) (domain.Order, error) {
	if update.IsZero() {
		return domain.Order{}, apperrors.Wrap(domain.ErrStatusUpdateNotBuilt, apperrors.CodeLogical, domain.ErrStatusUpdateNotBuilt.Error())
	}
	return api.One[domain.Order](ctx, a.c, http.MethodPatch, fmt.Sprintf("%s/%d/status", basePath, id), update)
}
