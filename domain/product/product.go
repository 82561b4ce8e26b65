/*
Package product - products and their purchasable variants

A product is a shell around its variants; exactly one variant carries
default_variant=true once any variant exists.
*/
package product

import (
	"fmt"
	"slices"

	"backoffice/domain/shared"
	"backoffice/pkg/errors"
	"backoffice/pkg/validation"
)

// Product Product with its variants
type Product struct {
	ID               int64     `json:"id"`
	OutOfStock       bool      `json:"out_of_stock"`
	DefaultVariantID *int64    `json:"default_variant_id"`
	Variants         []Variant `json:"variants"`
	shared.Timestamps
}

func (p Product) Key() int64 { return p.ID }

// Variant Purchasable variant of a product
type Variant struct {
	ID                     int64    `json:"id"`
	ProductID              int64    `json:"product_id"`
	DisplayLabel           string   `json:"display_label"`
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	MRP                    float64  `json:"mrp"`
	Price                  float64  `json:"price"`
	Images                 []string `json:"images"`
	BrandName              string   `json:"brand_name"`
	OutOfStock             bool     `json:"out_of_stock"`
	DefaultVariant         bool     `json:"default_variant"`
	MinQuantity            *int     `json:"min_quantity,omitempty"`
	MaxQuantity            *int     `json:"max_quantity,omitempty"`
	TotalAvailableQuantity int      `json:"total_available_quantity"`
	CategoryIDs            []int64  `json:"category_ids"`
	SubcategoryIDs         []int64  `json:"subcategory_ids"`
}

func (v Variant) Key() int64 { return v.ID }

// DefaultVariant returns the variant flagged as default.
func (p Product) DefaultVariant() (Variant, bool) {
	for _, v := range p.Variants {
		if v.DefaultVariant {
			return v, true
		}
	}
	return Variant{}, false
}

// CheckDefaultInvariant fails unless exactly one variant is default (or there are none).
func (p Product) CheckDefaultInvariant() error {
	if len(p.Variants) == 0 {
		return nil
	}
	count := 0
	for _, v := range p.Variants {
		if v.DefaultVariant {
			count++
		}
	}
	if count != 1 {
		return errors.Logical(fmt.Sprintf("product %d must have exactly one default variant, has %d", p.ID, count))
	}
	return nil
}

// CanRemoveVariant refuses to drop the product's only default variant.
func (p Product) CanRemoveVariant(variantID int64) error {
	var target *Variant
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			target = &p.Variants[i]
			break
		}
	}
	if target == nil {
		return errors.Logical(fmt.Sprintf("variant %d does not belong to product %d", variantID, p.ID))
	}
	if target.DefaultVariant {
		return errors.Logical("cannot remove the default variant; mark another variant as default first")
	}
	return nil
}

// CheckVariantChange fails with a logical error when writing in as variant
// variantID (0 for a new variant) would leave p without a default variant.
func (p Product) CheckVariantChange(variantID int64, in VariantInput) error {
	if _, ok := p.WithVariant(in.Variant(variantID)).DefaultVariant(); !ok {
		return errors.Logical(fmt.Sprintf("product %d would be left without a default variant; mark another variant as default instead", p.ID))
	}
	return nil
}

// WithVariant returns a copy of p with v inserted or replaced. Setting a new default
// clears the flag on the previous one so the invariant holds locally.
func (p Product) WithVariant(v Variant) Product {
	variants := make([]Variant, 0, len(p.Variants)+1)
	replaced := false
	for _, existing := range p.Variants {
		if v.DefaultVariant && existing.ID != v.ID {
			existing.DefaultVariant = false
		}
		if existing.ID == v.ID {
			existing = v
			replaced = true
		}
		variants = append(variants, existing)
	}
	if !replaced {
		variants = append([]Variant{v}, variants...)
	}
	p.Variants = variants
	if v.DefaultVariant {
		id := v.ID
		p.DefaultVariantID = &id
	}
	return p
}

// WithoutVariant returns a copy of p without the given variant.
func (p Product) WithoutVariant(variantID int64) Product {
	variants := make([]Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.ID != variantID {
			variants = append(variants, v)
		}
	}
	p.Variants = variants
	return p
}

// VariantInput Create/replace payload for a variant
type VariantInput struct {
	ProductID              int64    `json:"product_id,omitempty"`
	DisplayLabel           string   `json:"display_label" validate:"required"`
	Name                   string   `json:"name" validate:"required,max=200"`
	Description            string   `json:"description"`
	MRP                    float64  `json:"mrp" validate:"gt=0"`
	Price                  float64  `json:"price" validate:"gt=0,ltefield=MRP"`
	Images                 []string `json:"images" validate:"required,min=1,dive,url"`
	BrandName              string   `json:"brand_name"`
	OutOfStock             bool     `json:"out_of_stock"`
	DefaultVariant         bool     `json:"default_variant"`
	MinQuantity            *int     `json:"min_quantity,omitempty" validate:"omitempty,gte=1"`
	MaxQuantity            *int     `json:"max_quantity,omitempty" validate:"omitempty,gte=1"`
	TotalAvailableQuantity int      `json:"total_available_quantity" validate:"gte=0"`
	CategoryIDs            []int64  `json:"category_ids"`
	SubcategoryIDs         []int64  `json:"subcategory_ids"`
}

// Variant is the record in describes, under the given id.
func (in VariantInput) Variant(id int64) Variant {
	return Variant{
		ID:                     id,
		ProductID:              in.ProductID,
		DisplayLabel:           in.DisplayLabel,
		Name:                   in.Name,
		Description:            in.Description,
		MRP:                    in.MRP,
		Price:                  in.Price,
		Images:                 slices.Clone(in.Images),
		BrandName:              in.BrandName,
		OutOfStock:             in.OutOfStock,
		DefaultVariant:         in.DefaultVariant,
		MinQuantity:            in.MinQuantity,
		MaxQuantity:            in.MaxQuantity,
		TotalAvailableQuantity: in.TotalAvailableQuantity,
		CategoryIDs:            slices.Clone(in.CategoryIDs),
		SubcategoryIDs:         slices.Clone(in.SubcategoryIDs),
	}
}

// Validate checks a standalone variant payload, which must name its product.
func (in VariantInput) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.ProductID <= 0 {
		return errors.Validation(map[string]string{"product_id": "is required"})
	}
	if in.MinQuantity != nil && in.MaxQuantity != nil && *in.MinQuantity > *in.MaxQuantity {
		return errors.Validation(map[string]string{"max_quantity": "must not be below min_quantity"})
	}
	return nil
}

// Input Create/replace payload for a product. The first variant is created with it.
type Input struct {
	OutOfStock bool           `json:"out_of_stock"`
	Variants   []VariantInput `json:"variants" validate:"omitempty,dive"`
}

// Validate checks every variant and the default-variant invariant of the payload.
func (in Input) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if len(in.Variants) == 0 {
		return nil
	}
	defaults := 0
	for i, v := range in.Variants {
		if v.MinQuantity != nil && v.MaxQuantity != nil && *v.MinQuantity > *v.MaxQuantity {
			return errors.Validation(map[string]string{fmt.Sprintf("variants[%d].max_quantity", i): "must not be below min_quantity"})
		}
		if v.DefaultVariant {
			defaults++
		}
	}
	if defaults != 1 {
		return errors.Validation(map[string]string{"variants": "exactly one variant must be the default"})
	}
	return nil
}
