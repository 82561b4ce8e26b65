package store

import (
	"context"
	"io"
	"sync"

	"backoffice/api"
	productapi "backoffice/api/product"
	"backoffice/domain/auth"
	"backoffice/domain/category"
	"backoffice/domain/coupon"
	"backoffice/domain/order"
	"backoffice/domain/product"
	"backoffice/domain/shared"
)

// recorder collects notifications.
type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

func (r *recorder) last() Notification {
	notes := r.all()
	if len(notes) == 0 {
		return Notification{}
	}
	return notes[len(notes)-1]
}

type fakeCategoryAPI struct {
	calls  int
	list   func(api.ListParams) (shared.Page[category.Category], error)
	create func(category.Input) (category.Category, error)
	update func(int64, category.Patch) (category.Category, error)
	del    func(int64) error
}

func (f *fakeCategoryAPI) List(_ context.Context, p api.ListParams) (shared.Page[category.Category], error) {
	f.calls++
	return f.list(p)
}

func (f *fakeCategoryAPI) Get(_ context.Context, id int64) (category.Category, error) {
	f.calls++
	return category.Category{ID: id, Name: "Fruits", Image: "https://cdn.test/f.png"}, nil
}

func (f *fakeCategoryAPI) Create(_ context.Context, in category.Input) (category.Category, error) {
	f.calls++
	return f.create(in)
}

func (f *fakeCategoryAPI) Update(_ context.Context, id int64, p category.Patch) (category.Category, error) {
	f.calls++
	return f.update(id, p)
}

func (f *fakeCategoryAPI) Delete(_ context.Context, id int64) error {
	f.calls++
	return f.del(id)
}

type fakeProductAPI struct {
	products map[int64]product.Product
}

func (f *fakeProductAPI) List(context.Context, api.ListParams, productapi.ListFilter) (shared.Page[product.Product], error) {
	items := make([]product.Product, 0, len(f.products))
	for _, p := range f.products {
		items = append(items, p)
	}
	return shared.Page[product.Product]{Items: items}, nil
}

func (f *fakeProductAPI) Get(_ context.Context, id int64) (product.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductAPI) Create(_ context.Context, in product.Input) (product.Product, error) {
	return product.Product{ID: 99, OutOfStock: in.OutOfStock}, nil
}

func (f *fakeProductAPI) Update(_ context.Context, id int64, in product.Input) (product.Product, error) {
	p := f.products[id]
	p.OutOfStock = in.OutOfStock
	return p, nil
}

func (f *fakeProductAPI) Delete(context.Context, int64) error { return nil }

type fakeVariantAPI struct {
	nextID  int64
	updated []int64
	deleted []int64
	err     error
}

func (f *fakeVariantAPI) Create(_ context.Context, in product.VariantInput) (product.Variant, error) {
	if f.err != nil {
		return product.Variant{}, f.err
	}
	f.nextID++
	return product.Variant{ID: f.nextID, ProductID: in.ProductID, Name: in.Name, DefaultVariant: in.DefaultVariant, MRP: in.MRP, Price: in.Price}, nil
}

func (f *fakeVariantAPI) Update(_ context.Context, id int64, in product.VariantInput) (product.Variant, error) {
	f.updated = append(f.updated, id)
	return product.Variant{ID: id, ProductID: in.ProductID, Name: in.Name, DefaultVariant: in.DefaultVariant}, nil
}

func (f *fakeVariantAPI) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeOrderAPI struct {
	orders  []order.Order
	updates []order.StatusUpdate
	err     error
}

func (f *fakeOrderAPI) List(context.Context, api.ListParams, order.ListFilter) (shared.Page[order.Order], error) {
	return shared.Page[order.Order]{Items: append([]order.Order(nil), f.orders...)}, nil
}

func (f *fakeOrderAPI) Get(_ context.Context, id int64) (order.OrderDetail, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return order.OrderDetail{Order: o, OrderItems: []order.Item{{ID: 1, Name: "Rice", Quantity: 1}}}, nil
		}
	}
	return order.OrderDetail{}, nil
}

func (f *fakeOrderAPI) UpdateStatus(_ context.Context, id int64, u order.StatusUpdate) (order.Order, error) {
	if f.err != nil {
		return order.Order{}, f.err
	}
	f.updates = append(f.updates, u)
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = u.To()
			return f.orders[i], nil
		}
	}
	return order.Order{}, nil
}

type fakeCouponAPI struct {
	created []coupon.Input
	patches []coupon.Patch
	stored  map[int64]coupon.Coupon
}

func (f *fakeCouponAPI) List(context.Context, api.ListParams) (shared.Page[coupon.Coupon], error) {
	items := []coupon.Coupon{}
	for _, c := range f.stored {
		items = append(items, c)
	}
	return shared.Page[coupon.Coupon]{Items: items}, nil
}

func (f *fakeCouponAPI) Get(_ context.Context, id int64) (coupon.Coupon, error) {
	return f.stored[id], nil
}

func (f *fakeCouponAPI) Create(_ context.Context, in coupon.Input) (coupon.Coupon, error) {
	f.created = append(f.created, in)
	return coupon.Coupon{
		ID:               int64(len(f.created)),
		OfferCode:        in.OfferCode,
		DiscountType:     in.DiscountType,
		DiscountValue:    in.DiscountValue,
		MinDiscountValue: in.MinDiscountValue,
		MaxDiscountValue: in.MaxDiscountValue,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
	}, nil
}

func (f *fakeCouponAPI) Update(_ context.Context, id int64, p coupon.Patch) (coupon.Coupon, error) {
	f.patches = append(f.patches, p)
	c := f.stored[id]
	if p.DiscountValue != nil {
		c.DiscountValue = *p.DiscountValue
	}
	c.MinDiscountValue, c.MaxDiscountValue = p.MinDiscountValue, p.MaxDiscountValue
	f.stored[id] = c
	return c, nil
}

func (f *fakeCouponAPI) Delete(context.Context, int64) error { return nil }

type fakeAuthAPI struct {
	sent   []string
	tokens auth.Tokens
	err    error
}

func (f *fakeAuthAPI) SendOTP(_ context.Context, phone string) error {
	f.sent = append(f.sent, phone)
	return f.err
}

func (f *fakeAuthAPI) VerifyOTP(context.Context, string, string) (auth.Tokens, error) {
	return f.tokens, f.err
}

type fakeUploadAPI struct {
	mu   sync.Mutex
	fail map[string]error
	seen []string
}

func (f *fakeUploadAPI) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	_, _ = io.ReadAll(r)
	f.mu.Lock()
	f.seen = append(f.seen, filename)
	f.mu.Unlock()
	if err := f.fail[filename]; err != nil {
		return "", err
	}
	return "https://cdn.test/" + filename, nil
}
