package mockserver

import (
	"fmt"
	"sync"
	"time"

	"backoffice/domain/category"
	"backoffice/domain/configuration"
	"backoffice/domain/coupon"
	"backoffice/domain/order"
	"backoffice/domain/product"
	"backoffice/domain/shared"
	"backoffice/domain/user"
)

// Data is the whole in-memory backend. Collections are kept newest first,
// which is the order list endpoints return them in.
type Data struct {
	mu sync.RWMutex

	nextID int64
	now    func() time.Time

	categories    []category.Category
	subcategories []category.SubCategory
	products      []product.Product
	orders        []order.OrderDetail
	coupons       []coupon.Coupon
	users         []user.User
	configuration configuration.Configuration

	pendingOTP map[string]string
	sessions   map[string]string
	assets     map[string]asset
}

type asset struct {
	name        string
	contentType string
	body        []byte
}

// NewData returns an empty backend.
func NewData() *Data {
	return &Data{
		nextID:     1,
		now:        time.Now,
		pendingOTP: map[string]string{},
		sessions:   map[string]string{},
		assets:     map[string]asset{},
	}
}

// id hands out the next identifier. Callers hold mu.
func (d *Data) id() int64 {
	id := d.nextID
	d.nextID++
	return id
}

func (d *Data) stamp() shared.Timestamps {
	now := d.now().UTC().Format(time.RFC3339)
	return shared.Timestamps{CreatedAt: now, UpdatedAt: now}
}

func (d *Data) touch(ts *shared.Timestamps) {
	ts.UpdatedAt = d.now().UTC().Format(time.RFC3339)
}

// Counts reports the size of every collection.
func (d *Data) Counts() map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return map[string]int{
		"categories":     len(d.categories),
		"sub_categories": len(d.subcategories),
		"products":       len(d.products),
		"orders":         len(d.orders),
		"coupons":        len(d.coupons),
		"users":          len(d.users),
		"sessions":       len(d.sessions),
	}
}

// SeedData returns a backend filled with a small grocery catalogue.
func SeedData() *Data {
	d := NewData()
	d.seed()
	return d
}

func (d *Data) seed() {
	img := func(name string) string { return "https://cdn.example.com/seed/" + name + ".jpg" }
	prio := func(p int) *int { return &p }

	fruits := category.Category{ID: d.id(), Name: "Fruits", Image: img("fruits"), Priority: prio(3), Timestamps: d.stamp()}
	vegetables := category.Category{ID: d.id(), Name: "Vegetables", Image: img("vegetables"), Priority: prio(2), Timestamps: d.stamp()}
	dairy := category.Category{ID: d.id(), Name: "Dairy", Image: img("dairy"), Priority: prio(1), Timestamps: d.stamp()}
	d.categories = []category.Category{dairy, vegetables, fruits}

	sub := func(name string, parent int64) category.SubCategory {
		p := parent
		return category.SubCategory{
			Category: category.Category{ID: d.id(), Name: name, Image: img(name), Timestamps: d.stamp()},
			ParentID: &p,
		}
	}
	d.subcategories = []category.SubCategory{
		sub("milk", dairy.ID),
		sub("leafy", vegetables.ID),
		sub("citrus", fruits.ID),
		sub("apples", fruits.ID),
	}

	variant := func(label, name string, price float64, cat int64, def bool) product.Variant {
		return product.Variant{
			ID:                     d.id(),
			DisplayLabel:           label,
			Name:                   name,
			MRP:                    price + 10,
			Price:                  price,
			Images:                 []string{img(name)},
			BrandName:              "Farm Fresh",
			DefaultVariant:         def,
			TotalAvailableQuantity: 50,
			CategoryIDs:            []int64{cat},
		}
	}
	newProduct := func(variants ...product.Variant) product.Product {
		p := product.Product{ID: d.id(), Variants: variants, Timestamps: d.stamp()}
		for i := range p.Variants {
			p.Variants[i].ProductID = p.ID
			if p.Variants[i].DefaultVariant {
				id := p.Variants[i].ID
				p.DefaultVariantID = &id
			}
		}
		return p
	}
	apple := newProduct(
		variant("1 kg", "Shimla Apple", 180, fruits.ID, true),
		variant("500 g", "Shimla Apple", 95, fruits.ID, false),
	)
	spinach := newProduct(variant("250 g", "Spinach", 30, vegetables.ID, true))
	milk := newProduct(variant("1 l", "Toned Milk", 56, dairy.ID, true))
	d.products = []product.Product{milk, spinach, apple}

	first, last := "Asha", "Rao"
	d.users = []user.User{
		{ID: d.id(), PhoneNumber: "+919800000002", Email: "ravi@example.com"},
		{ID: d.id(), PhoneNumber: "+919800000001", Email: "asha@example.com", FirstName: &first, LastName: &last},
	}

	statuses := []order.Status{order.StatusPending, order.StatusAccepted, order.StatusShipped, order.StatusDelivered}
	for i, status := range statuses {
		customer := d.users[i%len(d.users)]
		v := apple.Variants[0]
		detail := order.OrderDetail{
			Order: order.Order{
				ID:                   d.id(),
				Status:               status,
				OrderNumber:          fmt.Sprintf("ORD-%04d", 1001+i),
				ExpectedDeliveryDate: d.now().Add(48 * time.Hour).UTC().Format("2006-01-02"),
				UserID:               customer.ID,
				PaymentDetails:       order.PaymentDetails{Method: "cod", Status: "pending", Amount: v.Price},
				User:                 order.Customer{ID: customer.ID, PhoneNumber: customer.PhoneNumber, Email: customer.Email},
				Timestamps:           d.stamp(),
			},
			OrderItems: []order.Item{{
				ID: d.id(), VariantID: v.ID, Name: v.Name, Quantity: 1, MRP: v.MRP, Price: v.Price, TotalAmount: v.Price,
			}},
			OrderCharges: []order.Charge{{ID: d.id(), Name: "Delivery", Amount: 0}},
			OrderAddress: order.Address{
				ID: d.id(), Name: "Home", PhoneNumber: customer.PhoneNumber,
				AddressLine1: "12 Market Road", City: "Pune", State: "MH", Pincode: "411001",
			},
			OrderHistories: []order.History{{ID: d.id(), Status: status, CreatedAt: d.now().UTC().Format(time.RFC3339)}},
			OrderCoupons:   []order.Coupon{},
		}
		d.orders = append([]order.OrderDetail{detail}, d.orders...)
	}

	start := d.now().Add(-24 * time.Hour).UTC().Truncate(time.Second)
	flat := 50.0
	d.coupons = []coupon.Coupon{{
		ID:               d.id(),
		OfferCode:        "FLAT50",
		Description:      "Flat 50 off above 499",
		DiscountType:     coupon.DiscountFixed,
		DiscountValue:    flat,
		MinDiscountValue: &flat,
		MaxDiscountValue: &flat,
		MinOrderValue:    499,
		StartDate:        start,
		EndDate:          start.Add(30 * 24 * time.Hour),
		IsActive:         true,
		Timestamps:       d.stamp(),
	}}

	d.configuration = configuration.Configuration{
		ID:               d.id(),
		Name:             "Corner Grocer",
		Image:            img("store"),
		PhoneNumber:      "+919800000100",
		WhatsappNumber:   "+919800000100",
		StoreStatus:      configuration.StoreOpen,
		MinOrderAmount:   99,
		DeliveryCharge:   20,
		DeliveryTime:     "30 mins",
		DeliveryRadius:   5,
		AdBanners:        []string{img("banner-1")},
		AnnouncementText: "Free delivery above 499",
		Timestamps:       d.stamp(),
	}
}
