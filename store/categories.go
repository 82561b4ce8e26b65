package store

import (
	"context"
	"sync"

	"backoffice/api"
	"backoffice/domain/category"
	"backoffice/domain/shared"
)

// CategoryAPI is what Categories needs from api/category.
type CategoryAPI interface {
	List(ctx context.Context, params api.ListParams) (shared.Page[category.Category], error)
	Get(ctx context.Context, id int64) (category.Category, error)
	Create(ctx context.Context, in category.Input) (category.Category, error)
	Update(ctx context.Context, id int64, patch category.Patch) (category.Category, error)
	Delete(ctx context.Context, id int64) error
}

// Categories Category list and selection
type Categories struct {
	api      CategoryAPI
	list     *List[category.Category]
	selected *Selected[category.Category]
	pageSize int
	reporter

	mu      sync.Mutex
	lastReq api.ListParams // params of the most recently started fetch
}

func NewCategories(a CategoryAPI, notifier Notifier, pageSize int) *Categories {
	return &Categories{
		api:      a,
		list:     NewList[category.Category](),
		selected: NewSelected[category.Category](),
		pageSize: pageSize,
		reporter: reporter{notifier: notifier},
	}
}

func (s *Categories) List() *List[category.Category]         { return s.list }
func (s *Categories) Selected() *Selected[category.Category] { return s.selected }

func (s *Categories) Fetch(ctx context.Context, params api.ListParams) error {
	params = withPageSize(params, s.pageSize)
	s.mu.Lock()
	s.lastReq = params
	s.mu.Unlock()
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[category.Category], error) {
		return s.api.List(ctx, params)
	}))
}

// KnownCategories returns the loaded categories when they are every category
// the backend has: a successful unfiltered fetch of the first and only page.
// Otherwise ok is false and callers must not treat a missing id as unknown.
func (s *Categories) KnownCategories() (known []category.Category, ok bool) {
	s.mu.Lock()
	req := s.lastReq
	s.mu.Unlock()

	snap := s.list.Snapshot()
	if snap.Status != StatusSucceeded || req.Q != "" || req.Page > 1 {
		return nil, false
	}
	if snap.Pagination != nil && snap.Pagination.TotalPages > 1 {
		return nil, false
	}
	return snap.Items, true
}

func (s *Categories) Select(ctx context.Context, id int64) (category.Category, error) {
	c, err := s.selected.Load(ctx, func(ctx context.Context) (category.Category, error) {
		return s.api.Get(ctx, id)
	})
	return c, s.failure(err)
}

func (s *Categories) Create(ctx context.Context, in category.Input) (category.Category, error) {
	if err := in.Validate(); err != nil {
		return category.Category{}, err
	}
	c, err := s.api.Create(ctx, in)
	if err != nil {
		return category.Category{}, s.failure(err)
	}
	s.list.Prepend(c)
	s.success("Category created")
	return c, nil
}

func (s *Categories) Update(ctx context.Context, id int64, patch category.Patch) (category.Category, error) {
	if err := patch.Validate(); err != nil {
		return category.Category{}, err
	}
	c, err := s.api.Update(ctx, id, patch)
	if err != nil {
		return category.Category{}, s.failure(err)
	}
	s.list.Replace(c)
	s.selected.Update(id, func(category.Category) category.Category { return c })
	s.success("Category updated")
	return c, nil
}

func (s *Categories) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failure(err)
	}
	s.list.Remove(id)
	s.selected.ClearIf(id)
	s.success("Category deleted")
	return nil
}

func withPageSize(params api.ListParams, pageSize int) api.ListParams {
	if params.PageSize <= 0 {
		params.PageSize = pageSize
	}
	return params.Normalize()
}
