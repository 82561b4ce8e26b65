package store

import (
	"context"

	"backoffice/api"
	"backoffice/domain/category"
	"backoffice/domain/shared"
)

type SubCategoryAPI interface {
	List(ctx context.Context, params api.ListParams) (shared.Page[category.SubCategory], error)
	ListByParents(ctx context.Context, parentIDs []int64) ([]category.SubCategory, error)
	Get(ctx context.Context, id int64) (category.SubCategory, error)
	Create(ctx context.Context, in category.SubInput) (category.SubCategory, error)
	Update(ctx context.Context, id int64, patch category.Patch) (category.SubCategory, error)
	Delete(ctx context.Context, id int64) error
}

// ParentCatalog reports the full category set when it is loaded.
type ParentCatalog interface {
	KnownCategories() ([]category.Category, bool)
}

// SubCategories Sub-category list; parents are checked against the category container.
type SubCategories struct {
	api      SubCategoryAPI
	parents  ParentCatalog
	list     *List[category.SubCategory]
	selected *Selected[category.SubCategory]
	pageSize int
	reporter
}

func NewSubCategories(a SubCategoryAPI, parents ParentCatalog, notifier Notifier, pageSize int) *SubCategories {
	return &SubCategories{
		api:      a,
		parents:  parents,
		list:     NewList[category.SubCategory](),
		selected: NewSelected[category.SubCategory](),
		pageSize: pageSize,
		reporter: reporter{notifier: notifier},
	}
}

func (s *SubCategories) List() *List[category.SubCategory]         { return s.list }
func (s *SubCategories) Selected() *Selected[category.SubCategory] { return s.selected }

func (s *SubCategories) Fetch(ctx context.Context, params api.ListParams) error {
	params = withPageSize(params, s.pageSize)
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[category.SubCategory], error) {
		return s.api.List(ctx, params)
	}))
}

// FetchByParents replaces the list with the children of the given categories.
func (s *SubCategories) FetchByParents(ctx context.Context, parentIDs []int64) error {
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[category.SubCategory], error) {
		items, err := s.api.ListByParents(ctx, parentIDs)
		return shared.Page[category.SubCategory]{Items: items}, err
	}))
}

func (s *SubCategories) Select(ctx context.Context, id int64) (category.SubCategory, error) {
	c, err := s.selected.Load(ctx, func(ctx context.Context) (category.SubCategory, error) {
		return s.api.Get(ctx, id)
	})
	return c, s.failure(err)
}

func (s *SubCategories) Create(ctx context.Context, in category.SubInput) (category.SubCategory, error) {
	if err := in.Validate(s.knownParents()); err != nil {
		return category.SubCategory{}, err
	}
	c, err := s.api.Create(ctx, in)
	if err != nil {
		return category.SubCategory{}, s.failure(err)
	}
	s.list.Prepend(c)
	s.success("Sub-category created")
	return c, nil
}

func (s *SubCategories) Update(ctx context.Context, id int64, patch category.Patch) (category.SubCategory, error) {
	if err := patch.Validate(); err != nil {
		return category.SubCategory{}, err
	}
	if err := category.CheckParent(patch.ParentID, s.knownParents()); err != nil {
		return category.SubCategory{}, err
	}
	c, err := s.api.Update(ctx, id, patch)
	if err != nil {
		return category.SubCategory{}, s.failure(err)
	}
	s.list.Replace(c)
	s.selected.Update(id, func(category.SubCategory) category.SubCategory { return c })
	s.success("Sub-category updated")
	return c, nil
}

func (s *SubCategories) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failure(err)
	}
	s.list.Remove(id)
	s.selected.ClearIf(id)
	s.success("Sub-category deleted")
	return nil
}

// knownParents is nil unless every category is loaded, which skips the parent
// check and leaves it to the backend.
func (s *SubCategories) knownParents() []category.Category {
	if s.parents == nil {
		return nil
	}
	known, ok := s.parents.KnownCategories()
	if !ok {
		return nil
	}
	if known == nil {
		known = []category.Category{}
	}
	return known
}
