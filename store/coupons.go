package store

import (
	"context"

	"backoffice/api"
	"backoffice/domain/coupon"
	"backoffice/domain/shared"
)

type CouponAPI interface {
	List(ctx context.Context, params api.ListParams) (shared.Page[coupon.Coupon], error)
	Get(ctx context.Context, id int64) (coupon.Coupon, error)
	Create(ctx context.Context, in coupon.Input) (coupon.Coupon, error)
	Update(ctx context.Context, id int64, patch coupon.Patch) (coupon.Coupon, error)
	Delete(ctx context.Context, id int64) error
}

// Coupons Coupon list and selection. Fixed coupons are collapsed before validation.
type Coupons struct {
	api      CouponAPI
	list     *List[coupon.Coupon]
	selected *Selected[coupon.Coupon]
	pageSize int
	reporter
}

func NewCoupons(a CouponAPI, notifier Notifier, pageSize int) *Coupons {
	return &Coupons{
		api:      a,
		list:     NewList[coupon.Coupon](),
		selected: NewSelected[coupon.Coupon](),
		pageSize: pageSize,
		reporter: reporter{notifier: notifier},
	}
}

func (s *Coupons) List() *List[coupon.Coupon]         { return s.list }
func (s *Coupons) Selected() *Selected[coupon.Coupon] { return s.selected }

func (s *Coupons) Fetch(ctx context.Context, params api.ListParams) error {
	params = withPageSize(params, s.pageSize)
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[coupon.Coupon], error) {
		return s.api.List(ctx, params)
	}))
}

func (s *Coupons) Select(ctx context.Context, id int64) (coupon.Coupon, error) {
	c, err := s.selected.Load(ctx, func(ctx context.Context) (coupon.Coupon, error) {
		return s.api.Get(ctx, id)
	})
	return c, s.failure(err)
}

func (s *Coupons) ClearSelected() {
	s.selected.Clear()
}

func (s *Coupons) Create(ctx context.Context, in coupon.Input) (coupon.Coupon, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return coupon.Coupon{}, err
	}
	c, err := s.api.Create(ctx, in)
	if err != nil {
		return coupon.Coupon{}, s.failure(err)
	}
	s.list.Prepend(c)
	s.success("Coupon created")
	return c, nil
}

// Update merges patch over the coupon as currently known, fetching it when
// it is neither listed nor selected.
func (s *Coupons) Update(ctx context.Context, id int64, patch coupon.Patch) (coupon.Coupon, error) {
	current, ok := s.lookup(id)
	if !ok {
		var err error
		if current, err = s.api.Get(ctx, id); err != nil {
			return coupon.Coupon{}, s.failure(err)
		}
	}
	patch = patch.Normalize(current)
	if err := patch.Validate(current); err != nil {
		return coupon.Coupon{}, err
	}
	c, err := s.api.Update(ctx, id, patch)
	if err != nil {
		return coupon.Coupon{}, s.failure(err)
	}
	s.list.Replace(c)
	s.selected.Update(id, func(coupon.Coupon) coupon.Coupon { return c })
	s.success("Coupon updated")
	return c, nil
}

func (s *Coupons) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failure(err)
	}
	s.list.Remove(id)
	s.selected.ClearIf(id)
	s.success("Coupon deleted")
	return nil
}

func (s *Coupons) lookup(id int64) (coupon.Coupon, bool) {
	if c, ok := s.selected.Get(); ok && c.ID == id {
		return c, true
	}
	return s.list.Find(id)
}
