package store

import (
	"context"
	"fmt"

	"backoffice/api"
	"backoffice/domain/order"
	"backoffice/domain/shared"
	apperrors "backoffice/pkg/errors"
)

type OrderAPI interface {
	List(ctx context.Context, params api.ListParams, filter order.ListFilter) (shared.Page[order.Order], error)
	Get(ctx context.Context, id int64) (order.OrderDetail, error)
	UpdateStatus(ctx context.Context, id int64, update order.StatusUpdate) (order.Order, error)
}

// Orders Order list plus the selected order's detail
type Orders struct {
	api      OrderAPI
	list     *List[order.Order]
	selected *Selected[order.OrderDetail]
	pageSize int
	reporter
}

func NewOrders(a OrderAPI, notifier Notifier, pageSize int) *Orders {
	return &Orders{
		api:      a,
		list:     NewList[order.Order](),
		selected: NewSelected[order.OrderDetail](),
		pageSize: pageSize,
		reporter: reporter{notifier: notifier},
	}
}

func (s *Orders) List() *List[order.Order]               { return s.list }
func (s *Orders) Selected() *Selected[order.OrderDetail] { return s.selected }

func (s *Orders) Fetch(ctx context.Context, params api.ListParams, filter order.ListFilter) error {
	params = withPageSize(params, s.pageSize)
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[order.Order], error) {
		return s.api.List(ctx, params, filter)
	}))
}

// Select loads the detail shape of one order.
func (s *Orders) Select(ctx context.Context, id int64) (order.OrderDetail, error) {
	d, err := s.selected.Load(ctx, func(ctx context.Context) (order.OrderDetail, error) {
		return s.api.Get(ctx, id)
	})
	return d, s.failure(err)
}

func (s *Orders) ClearSelected() {
	s.selected.Clear()
}

// AllowedTransitions is the set of actions a view should offer for the order.
func (s *Orders) AllowedTransitions(id int64) []order.Status {
	current, ok := s.currentStatus(id)
	if !ok {
		return nil
	}
	return order.NextStatuses(current)
}

// Transition moves an order to next. Transitions outside the whitelist fail
// with LOGICAL_ERROR and never reach the backend.
func (s *Orders) Transition(ctx context.Context, id int64, next order.Status, comment string) (order.Order, error) {
	current, ok := s.currentStatus(id)
	if !ok {
		return order.Order{}, apperrors.Logical(fmt.Sprintf("order %d is not loaded", id))
	}
	update, err := order.NewStatusUpdate(current, next, comment)
	if err != nil {
		return order.Order{}, err
	}
	updated, err := s.api.UpdateStatus(ctx, id, update)
	if err != nil {
		return order.Order{}, s.failure(err)
	}

	patch := func(o order.Order) order.Order {
		if updated.ID == id {
			return updated
		}
		o.Status = update.To()
		return o
	}
	s.list.Update(id, patch)
	s.selected.Update(id, func(d order.OrderDetail) order.OrderDetail {
		d.Order = patch(d.Order)
		return d
	})

	result, _ := s.list.Find(id)
	if result.ID == 0 {
		if d, ok := s.selected.Get(); ok {
			result = d.Order
		}
	}
	s.success(fmt.Sprintf("Order moved to %s", update.To().Label()))
	return result, nil
}

// currentStatus prefers the detail view, which is fetched more recently than the list.
func (s *Orders) currentStatus(id int64) (order.Status, bool) {
	if d, ok := s.selected.Get(); ok && d.ID == id {
		return d.Status, true
	}
	if o, ok := s.list.Find(id); ok {
		return o.Status, true
	}
	return "", false
}
