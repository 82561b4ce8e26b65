/*
Package order - orders as the back office sees them

Two shapes of the same order exist on purpose: Order is what list endpoints
return, OrderDetail is the single-order payload with items, charges, address,
histories and applied coupons. They are fetched separately and never derived
from each other.

Orders are created by the storefront checkout; the back office only moves
them through the status machine in status.go.
*/
package order

import (
	"backoffice/domain/shared"
)

// Order List shape of an order
type Order struct {
	ID                   int64          `json:"id"`
	Status               Status         `json:"status"`
	OrderNumber          string         `json:"order_number"`
	DeliveredAt          *string        `json:"delivered_at,omitempty"`
	ExpectedDeliveryDate string         `json:"expected_delivery_date"`
	CancellationReason   *string        `json:"cancellation_reason,omitempty"`
	UserID               int64          `json:"user_id"`
	PaymentDetails       PaymentDetails `json:"payment_details"`
	User                 Customer       `json:"user"`
	shared.Timestamps
}

func (o Order) Key() int64 { return o.ID }

// OrderDetail Single-order shape
type OrderDetail struct {
	Order
	OrderItems     []Item    `json:"order_items"`
	OrderCharges   []Charge  `json:"order_charges"`
	OrderAddress   Address   `json:"order_address"`
	OrderHistories []History `json:"order_histories"`
	OrderCoupons   []Coupon  `json:"order_coupons"`
}

func (d OrderDetail) Key() int64 { return d.ID }

// Summary returns the list shape embedded in the detail.
func (d OrderDetail) Summary() Order { return d.Order }

// NextStatuses lists the transitions an admin may offer for this order.
func (o Order) NextStatuses() []Status { return NextStatuses(o.Status) }

type PaymentDetails struct {
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount"`
}

// Customer The user snapshot attached to an order
type Customer struct {
	ID          int64  `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
}

type Item struct {
	ID          int64   `json:"id"`
	VariantID   int64   `json:"variant_id"`
	Name        string  `json:"name"`
	Image       string  `json:"image,omitempty"`
	Quantity    int     `json:"quantity"`
	MRP         float64 `json:"mrp"`
	Price       float64 `json:"price"`
	TotalAmount float64 `json:"total_amount"`
}

type Charge struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Address struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	PhoneNumber  string   `json:"phone_number"`
	AddressLine1 string   `json:"address_line_1"`
	AddressLine2 string   `json:"address_line_2,omitempty"`
	Landmark     string   `json:"landmark,omitempty"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// History One status change recorded by the backend
type History struct {
	ID        int64  `json:"id"`
	Status    Status `json:"status"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Coupon A coupon applied to an order
type Coupon struct {
	ID             int64   `json:"id"`
	OfferCode      string  `json:"offer_code"`
	DiscountAmount float64 `json:"discount_amount"`
}

// ListFilter Resource-specific filters of GET /api/orders/all
type ListFilter struct {
	Status      Status
	OrderNumber string
	PhoneNumber string
}
