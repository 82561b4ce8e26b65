package store

import (
	"context"
	"fmt"

	"backoffice/api"
	productapi "backoffice/api/product"
	"backoffice/domain/product"
	"backoffice/domain/shared"
	apperrors "backoffice/pkg/errors"
)

type ProductAPI interface {
	List(ctx context.Context, params api.ListParams, filter productapi.ListFilter) (shared.Page[product.Product], error)
	Get(ctx context.Context, id int64) (product.Product, error)
	Create(ctx context.Context, in product.Input) (product.Product, error)
	Update(ctx context.Context, id int64, in product.Input) (product.Product, error)
	Delete(ctx context.Context, id int64) error
}

type VariantAPI interface {
	Create(ctx context.Context, in product.VariantInput) (product.Variant, error)
	Update(ctx context.Context, id int64, in product.VariantInput) (product.Variant, error)
	Delete(ctx context.Context, id int64) error
}

// Products Product list, selection, and the variants nested in them
type Products struct {
	api      ProductAPI
	variants VariantAPI
	list     *List[product.Product]
	selected *Selected[product.Product]
	pageSize int
	reporter
}

func NewProducts(a ProductAPI, variants VariantAPI, notifier Notifier, pageSize int) *Products {
	return &Products{
		api:      a,
		variants: variants,
		list:     NewList[product.Product](),
		selected: NewSelected[product.Product](),
		pageSize: pageSize,
		reporter: reporter{notifier: notifier},
	}
}

func (s *Products) List() *List[product.Product]         { return s.list }
func (s *Products) Selected() *Selected[product.Product] { return s.selected }

func (s *Products) Fetch(ctx context.Context, params api.ListParams, filter productapi.ListFilter) error {
	params = withPageSize(params, s.pageSize)
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[product.Product], error) {
		return s.api.List(ctx, params, filter)
	}))
}

func (s *Products) Select(ctx context.Context, id int64) (product.Product, error) {
	p, err := s.selected.Load(ctx, func(ctx context.Context) (product.Product, error) {
		return s.api.Get(ctx, id)
	})
	return p, s.failure(err)
}

func (s *Products) Create(ctx context.Context, in product.Input) (product.Product, error) {
	if err := in.Validate(); err != nil {
		return product.Product{}, err
	}
	p, err := s.api.Create(ctx, in)
	if err != nil {
		return product.Product{}, s.failure(err)
	}
	s.list.Prepend(p)
	s.success("Product created")
	return p, nil
}

func (s *Products) Update(ctx context.Context, id int64, in product.Input) (product.Product, error) {
	if err := in.Validate(); err != nil {
		return product.Product{}, err
	}
	p, err := s.api.Update(ctx, id, in)
	if err != nil {
		return product.Product{}, s.failure(err)
	}
	s.apply(id, func(product.Product) product.Product { return p })
	s.success("Product updated")
	return p, nil
}

func (s *Products) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failure(err)
	}
	s.list.Remove(id)
	s.selected.ClearIf(id)
	s.success("Product deleted")
	return nil
}

// CreateVariant adds a variant and patches it into its product. The first
// variant of a loaded product must be the default.
func (s *Products) CreateVariant(ctx context.Context, in product.VariantInput) (product.Variant, error) {
	if err := in.Validate(); err != nil {
		return product.Variant{}, err
	}
	if err := s.checkDefault(0, in); err != nil {
		return product.Variant{}, err
	}
	v, err := s.variants.Create(ctx, in)
	if err != nil {
		return product.Variant{}, s.failure(err)
	}
	s.apply(productID(v, in), func(p product.Product) product.Product { return p.WithVariant(v) })
	s.success("Variant created")
	return v, nil
}

// UpdateVariant replaces a variant and patches it into its product. Clearing
// the flag on the current default is refused; set it on another variant.
func (s *Products) UpdateVariant(ctx context.Context, id int64, in product.VariantInput) (product.Variant, error) {
	if err := in.Validate(); err != nil {
		return product.Variant{}, err
	}
	if err := s.checkDefault(id, in); err != nil {
		return product.Variant{}, err
	}
	v, err := s.variants.Update(ctx, id, in)
	if err != nil {
		return product.Variant{}, s.failure(err)
	}
	s.apply(productID(v, in), func(p product.Product) product.Product { return p.WithVariant(v) })
	s.success("Variant updated")
	return v, nil
}

// DeleteVariant refuses, before any request, to remove the variant that is
// the product's current default (default_variant=true in the loaded product),
// even when the server briefly holds a second default.
func (s *Products) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	p, ok := s.lookup(productID)
	if !ok {
		return apperrors.Logical(fmt.Sprintf("product %d is not loaded", productID))
	}
	if err := p.CanRemoveVariant(variantID); err != nil {
		return err
	}
	if err := s.variants.Delete(ctx, variantID); err != nil {
		return s.failure(err)
	}
	s.apply(productID, func(p product.Product) product.Product { return p.WithoutVariant(variantID) })
	s.success("Variant deleted")
	return nil
}

// CanRemoveVariant lets a view disable the remove action up front. It is false
// for the product's current default variant.
func (s *Products) CanRemoveVariant(productID, variantID int64) bool {
	p, ok := s.lookup(productID)
	return ok && p.CanRemoveVariant(variantID) == nil
}

// checkDefault runs the one-default rule against the loaded product. A product
// that is not loaded is left to the backend.
func (s *Products) checkDefault(variantID int64, in product.VariantInput) error {
	p, ok := s.lookup(in.ProductID)
	if !ok {
		return nil
	}
	return p.CheckVariantChange(variantID, in)
}

func (s *Products) lookup(id int64) (product.Product, bool) {
	if p, ok := s.selected.Get(); ok && p.ID == id {
		return p, true
	}
	return s.list.Find(id)
}

func (s *Products) apply(id int64, fn func(product.Product) product.Product) {
	s.list.Update(id, fn)
	s.selected.Update(id, fn)
}

func productID(v product.Variant, in product.VariantInput) int64 {
	if v.ProductID != 0 {
		return v.ProductID
	}
	return in.ProductID
}
