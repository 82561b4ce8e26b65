// Package coupon models offers/coupons managed from the back office.
package coupon

import (
	"time"

	"backoffice/domain/shared"
	"backoffice/pkg/errors"
	"backoffice/pkg/validation"
)

// DiscountType fixed or percentage
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon Offer as returned by the backend
type Coupon struct {
	ID                int64        `json:"id"`
	OfferCode         string       `json:"offer_code"`
	Description       string       `json:"description"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	MinDiscountValue  *float64     `json:"min_discount_value,omitempty"`
	MaxDiscountValue  *float64     `json:"max_discount_value,omitempty"`
	MinOrderValue     float64      `json:"min_order_value"`
	OfferType         string       `json:"offer_type,omitempty"`
	StartDate         time.Time    `json:"start_date"`
	EndDate           time.Time    `json:"end_date"`
	IsActive          bool         `json:"is_active"`
	UsageLimitPerUser *int         `json:"usage_limit_per_user,omitempty"`
	shared.Timestamps
}

func (c Coupon) Key() int64 { return c.ID }

// LiveAt reports whether the coupon is active and inside its validity window at t.
func (c Coupon) LiveAt(t time.Time) bool {
	return c.IsActive && !t.Before(c.StartDate) && t.Before(c.EndDate)
}

// Input Create payload
type Input struct {
	OfferCode         string       `json:"offer_code" validate:"required,max=40"`
	Description       string       `json:"description" validate:"max=500"`
	DiscountType      DiscountType `json:"discount_type" validate:"required,oneof=fixed percentage"`
	DiscountValue     float64      `json:"discount_value" validate:"gt=0"`
	MinDiscountValue  *float64     `json:"min_discount_value,omitempty" validate:"omitempty,gte=0"`
	MaxDiscountValue  *float64     `json:"max_discount_value,omitempty" validate:"omitempty,gte=0"`
	MinOrderValue     float64      `json:"min_order_value" validate:"gte=0"`
	OfferType         string       `json:"offer_type,omitempty"`
	StartDate         time.Time    `json:"start_date" validate:"required"`
	EndDate           time.Time    `json:"end_date" validate:"required,gtfield=StartDate"`
	IsActive          bool         `json:"is_active"`
	UsageLimitPerUser *int         `json:"usage_limit_per_user,omitempty" validate:"omitempty,gte=1"`
}

// Normalize collapses min/max discount to the discount value for fixed coupons.
func (in Input) Normalize() Input {
	if in.DiscountType == DiscountFixed {
		v := in.DiscountValue
		lo, hi := v, v
		in.MinDiscountValue = &lo
		in.MaxDiscountValue = &hi
	}
	return in
}

// Validate checks the normalized payload.
func (in Input) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	return checkDiscountBounds(in.DiscountType, in.DiscountValue, in.MinDiscountValue, in.MaxDiscountValue)
}

// Patch Partial update payload
type Patch struct {
	OfferCode         *string       `json:"offer_code,omitempty" validate:"omitempty,max=40"`
	Description       *string       `json:"description,omitempty" validate:"omitempty,max=500"`
	DiscountType      *DiscountType `json:"discount_type,omitempty" validate:"omitempty,oneof=fixed percentage"`
	DiscountValue     *float64      `json:"discount_value,omitempty" validate:"omitempty,gt=0"`
	MinDiscountValue  *float64      `json:"min_discount_value,omitempty" validate:"omitempty,gte=0"`
	MaxDiscountValue  *float64      `json:"max_discount_value,omitempty" validate:"omitempty,gte=0"`
	MinOrderValue     *float64      `json:"min_order_value,omitempty" validate:"omitempty,gte=0"`
	OfferType         *string       `json:"offer_type,omitempty"`
	StartDate         *time.Time    `json:"start_date,omitempty"`
	EndDate           *time.Time    `json:"end_date,omitempty"`
	IsActive          *bool         `json:"is_active,omitempty"`
	UsageLimitPerUser *int          `json:"usage_limit_per_user,omitempty" validate:"omitempty,gte=1"`
}

// Normalize applies the fixed-discount collapse against the current coupon,
// so a patch that only changes discount_value on a fixed coupon keeps min/max in step.
func (p Patch) Normalize(current Coupon) Patch {
	discountType := current.DiscountType
	if p.DiscountType != nil {
		discountType = *p.DiscountType
	}
	if discountType != DiscountFixed {
		return p
	}
	value := current.DiscountValue
	if p.DiscountValue != nil {
		value = *p.DiscountValue
	}
	lo, hi := value, value
	p.MinDiscountValue = &lo
	p.MaxDiscountValue = &hi
	return p
}

// Validate checks the patch merged over current.
func (p Patch) Validate(current Coupon) error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	start, end := current.StartDate, current.EndDate
	if p.StartDate != nil {
		start = *p.StartDate
	}
	if p.EndDate != nil {
		end = *p.EndDate
	}
	if !end.After(start) {
		return errors.Validation(map[string]string{"end_date": "must be after start_date"})
	}
	discountType := current.DiscountType
	if p.DiscountType != nil {
		discountType = *p.DiscountType
	}
	value := current.DiscountValue
	if p.DiscountValue != nil {
		value = *p.DiscountValue
	}
	lo, hi := current.MinDiscountValue, current.MaxDiscountValue
	if p.MinDiscountValue != nil {
		lo = p.MinDiscountValue
	}
	if p.MaxDiscountValue != nil {
		hi = p.MaxDiscountValue
	}
	return checkDiscountBounds(discountType, value, lo, hi)
}

func checkDiscountBounds(t DiscountType, value float64, lo, hi *float64) error {
	fields := map[string]string{}
	if t == DiscountPercentage && value > 100 {
		fields["discount_value"] = "must be at most 100 for percentage coupons"
	}
	if lo != nil && hi != nil && *lo > *hi {
		fields["max_discount_value"] = "must not be below min_discount_value"
	}
	if t == DiscountFixed && ((lo != nil && *lo != value) || (hi != nil && *hi != value)) {
		fields["discount_value"] = "fixed coupons must have min and max discount equal to the discount value"
	}
	if len(fields) > 0 {
		return errors.Validation(fields)
	}
	return nil
}
