package store

import (
	"context"
	"time"

	"backoffice/api"
	authapi "backoffice/api/auth"
	categoryapi "backoffice/api/category"
	configurationapi "backoffice/api/configuration"
	couponapi "backoffice/api/coupon"
	orderapi "backoffice/api/order"
	productapi "backoffice/api/product"
	subcategoryapi "backoffice/api/subcategory"
	uploadapi "backoffice/api/upload"
	userapi "backoffice/api/user"
	variantapi "backoffice/api/variant"
	"backoffice/config"
	"backoffice/domain/auth"
)

// Store Every container, wired to one API client
type Store struct {
	Session       *Session
	Categories    *Categories
	SubCategories *SubCategories
	Products      *Products
	Orders        *Orders
	Coupons       *Coupons
	Configuration *Configuration
	Users         *Users
	Uploads       *Uploads

	debounce time.Duration
}

// New builds the containers. tokens should be the same store the client reads from.
func New(client api.Client, tokens auth.TokenStore, cfg config.StoreConfig, notifier Notifier) *Store {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	categories := NewCategories(categoryapi.New(client), notifier, cfg.PageSize)
	return &Store{
		Session:       NewSession(authapi.New(client), tokens, notifier),
		Categories:    categories,
		SubCategories: NewSubCategories(subcategoryapi.New(client), categories, notifier, cfg.PageSize),
		Products:      NewProducts(productapi.New(client), variantapi.New(client), notifier, cfg.PageSize),
		Orders:        NewOrders(orderapi.New(client), notifier, cfg.PageSize),
		Coupons:       NewCoupons(couponapi.New(client), notifier, cfg.PageSize),
		Configuration: NewConfiguration(configurationapi.New(client), notifier),
		Users:         NewUsers(userapi.New(client), notifier, cfg.PageSize),
		Uploads:       NewUploads(uploadapi.New(client), notifier, cfg.UploadConcurrency),
		debounce:      cfg.SearchDebounce,
	}
}

// Search feeds keystrokes to a fetch, issuing only the last one of each burst.
type Search struct {
	debouncer *Debouncer
	fetch     func(ctx context.Context, q string) error
}

func NewSearch(wait time.Duration, fetch func(ctx context.Context, q string) error) *Search {
	return &Search{debouncer: NewDebouncer(wait), fetch: fetch}
}

// Search returns a debounced search using the configured quiet window.
func (s *Store) Search(fetch func(ctx context.Context, q string) error) *Search {
	return NewSearch(s.debounce, fetch)
}

// Type records the current text; the fetch runs once typing pauses.
// Its error is reported by the container the fetch belongs to.
func (s *Search) Type(ctx context.Context, q string) {
	s.debouncer.Trigger(func() {
		_ = s.fetch(ctx, q)
	})
}

func (s *Search) Stop() {
	s.debouncer.Stop()
}
