package store

import (
	"context"
	"net/http"
	"testing"

	"backoffice/api"
	"backoffice/domain/category"
	"backoffice/domain/shared"
	apperrors "backoffice/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCategories(t *testing.T) (*Categories, *fakeCategoryAPI, *recorder) {
	t.Helper()
	fake := &fakeCategoryAPI{
		list: func(p api.ListParams) (shared.Page[category.Category], error) {
			meta := shared.NewPaginationMeta(p.Page, p.PageSize, 2)
			return shared.Page[category.Category]{
				Items:      []category.Category{{ID: 1, Name: "Fruits"}, {ID: 2, Name: "Dairy"}},
				Pagination: &meta,
			}, nil
		},
	}
	notes := &recorder{}
	s := NewCategories(fake, notes, 30)
	require.NoError(t, s.Fetch(context.Background(), api.ListParams{}))
	return s, fake, notes
}

func TestCategoriesFetchTwiceIsIdempotent(t *testing.T) {
	s, _, _ := seededCategories(t)
	first := s.List().Snapshot()

	require.NoError(t, s.Fetch(context.Background(), api.ListParams{}))
	assert.Equal(t, first, s.List().Snapshot())
	assert.Equal(t, 30, first.Pagination.PageSize)
}

func TestCategoriesCreatePrepends(t *testing.T) {
	s, fake, notes := seededCategories(t)
	fake.create = func(in category.Input) (category.Category, error) {
		return category.Category{ID: 3, Name: in.Name, Image: in.Image}, nil
	}

	c, err := s.Create(context.Background(), category.Input{Name: "Bakery", Image: "https://cdn.test/b.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)

	items := s.List().Items()
	assert.Equal(t, int64(3), items[0].ID)
	assert.Len(t, items, 3)
	assert.Equal(t, Notification{Level: LevelSuccess, Message: "Category created"}, notes.last())
	assert.Equal(t, StatusSucceeded, s.List().Status())
}

func TestCategoriesValidationBlocksNetwork(t *testing.T) {
	s, fake, notes := seededCategories(t)
	before := fake.calls

	_, err := s.Create(context.Background(), category.Input{Name: "", Image: "not a url"})

	require.True(t, apperrors.Is(err, apperrors.CodeValidation))
	fields := apperrors.AsAppError(err).Fields
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid URL", fields["image"])
	assert.Equal(t, before, fake.calls, "no request is made")
	assert.Empty(t, notes.all())
}

func TestCategoriesUpdateReplacesListAndSelection(t *testing.T) {
	s, fake, _ := seededCategories(t)
	_, err := s.Select(context.Background(), 1)
	require.NoError(t, err)

	fake.update = func(id int64, p category.Patch) (category.Category, error) {
		return category.Category{ID: id, Name: *p.Name}, nil
	}
	name := "Fresh Fruits"
	_, err = s.Update(context.Background(), 1, category.Patch{Name: &name})
	require.NoError(t, err)

	found, _ := s.List().Find(1)
	assert.Equal(t, "Fresh Fruits", found.Name)
	selected, _ := s.Selected().Get()
	assert.Equal(t, "Fresh Fruits", selected.Name)
}

func TestCategoriesFailedMutationLeavesState(t *testing.T) {
	s, fake, notes := seededCategories(t)
	fake.del = func(int64) error { return apperrors.Server(http.StatusConflict, "category has products") }
	before := s.List().Snapshot()

	err := s.Delete(context.Background(), 1)

	assert.Equal(t, "category has products", apperrors.Message(err))
	assert.Equal(t, before, s.List().Snapshot())
	assert.Equal(t, Notification{Level: LevelError, Message: "category has products"}, notes.last())
}

func TestCategoriesDelete(t *testing.T) {
	s, fake, _ := seededCategories(t)
	fake.del = func(int64) error { return nil }
	_, _ = s.Select(context.Background(), 2)

	require.NoError(t, s.Delete(context.Background(), 2))
	_, ok := s.List().Find(2)
	assert.False(t, ok)
	_, ok = s.Selected().Get()
	assert.False(t, ok)
}

func TestCategoriesFetchFailureNotifies(t *testing.T) {
	s, fake, notes := seededCategories(t)
	fake.list = func(api.ListParams) (shared.Page[category.Category], error) {
		return shared.Page[category.Category]{}, apperrors.Transport(nil)
	}

	require.Error(t, s.Fetch(context.Background(), api.ListParams{}))
	snap := s.List().Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, apperrors.MsgNoResponse, notes.last().Message)
}
