// Package configuration models the per-tenant store settings singleton.
package configuration

import (
	"backoffice/domain/shared"
	"backoffice/pkg/validation"
)

// StoreStatus whether the storefront accepts orders
type StoreStatus string

const (
	StoreOpen   StoreStatus = "open"
	StoreClosed StoreStatus = "closed"
)

// Configuration One row per tenant; fetched and patched, never created or deleted here.
type Configuration struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Image            string      `json:"image"`
	PhoneNumber      string      `json:"phone_number"`
	WhatsappNumber   string      `json:"whatsapp_number"`
	StoreStatus      StoreStatus `json:"store_status"`
	MinOrderAmount   float64     `json:"min_order_amount"`
	DeliveryCharge   float64     `json:"delivery_charge"`
	DeliveryTime     string      `json:"delivery_time"`
	DeliveryRadius   float64     `json:"delivery_radius"`
	AdBanners        []string    `json:"ad_banners"`
	AnnouncementText string      `json:"announcement_text"`
	shared.Timestamps
}

func (c Configuration) Key() int64 { return c.ID }

// Patch Partial update; nil fields are not sent.
type Patch struct {
	Name             *string      `json:"name,omitempty" validate:"omitempty,max=120"`
	Image            *string      `json:"image,omitempty" validate:"omitempty,url"`
	PhoneNumber      *string      `json:"phone_number,omitempty" validate:"omitempty,phone"`
	WhatsappNumber   *string      `json:"whatsapp_number,omitempty" validate:"omitempty,phone"`
	StoreStatus      *StoreStatus `json:"store_status,omitempty" validate:"omitempty,oneof=open closed"`
	MinOrderAmount   *float64     `json:"min_order_amount,omitempty" validate:"omitempty,gte=0"`
	DeliveryCharge   *float64     `json:"delivery_charge,omitempty" validate:"omitempty,gte=0"`
	DeliveryTime     *string      `json:"delivery_time,omitempty"`
	DeliveryRadius   *float64     `json:"delivery_radius,omitempty" validate:"omitempty,gt=0"`
	AdBanners        []string     `json:"ad_banners,omitempty" validate:"omitempty,dive,url"`
	AnnouncementText *string      `json:"announcement_text,omitempty" validate:"omitempty,max=280"`
}

func (p Patch) Validate() error {
	return validation.Struct(p)
}

// Apply returns c with the non-nil fields of p written over it.
func (p Patch) Apply(c Configuration) Configuration {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.PhoneNumber != nil {
		c.PhoneNumber = *p.PhoneNumber
	}
	if p.WhatsappNumber != nil {
		c.WhatsappNumber = *p.WhatsappNumber
	}
	if p.StoreStatus != nil {
		c.StoreStatus = *p.StoreStatus
	}
	if p.MinOrderAmount != nil {
		c.MinOrderAmount = *p.MinOrderAmount
	}
	if p.DeliveryCharge != nil {
		c.DeliveryCharge = *p.DeliveryCharge
	}
	if p.DeliveryTime != nil {
		c.DeliveryTime = *p.DeliveryTime
	}
	if p.DeliveryRadius != nil {
		c.DeliveryRadius = *p.DeliveryRadius
	}
	if p.AdBanners != nil {
		c.AdBanners = append([]string(nil), p.AdBanners...)
	}
	if p.AnnouncementText != nil {
		c.AnnouncementText = *p.AnnouncementText
	}
	return c
}
