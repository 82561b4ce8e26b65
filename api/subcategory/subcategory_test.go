package subcategory

import (
	"context"
	"net/http"
	"testing"

	"backoffice/api"
	"backoffice/api/apitest"
	domain "backoffice/domain/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByParentsCommaJoined(t *testing.T) {
	srv := apitest.NewServer(t, []map[string]any{
		{"id": 11, "name": "Apples", "image": "https://cdn.test/a.png", "parent_id": 1},
		{"id": 21, "name": "Tomatoes", "image": "https://cdn.test/t.png", "parent_id": 2},
	})

	subs, err := New(srv.Client()).ListByParents(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.NotNil(t, subs[0].ParentID)
	assert.Equal(t, int64(1), *subs[0].ParentID)

	req := srv.Last(t)
	assert.Equal(t, "/api/sub-categories", req.Path)
	assert.Equal(t, "parent_ids=1,2,3", req.RawQuery)
}

func TestListSearch(t *testing.T) {
	srv := apitest.NewServer(t, []any{})
	page, err := New(srv.Client()).List(context.Background(), api.ListParams{Q: "app le"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, "page=1&limit=30&q=app%20le", srv.Last(t).RawQuery)
}

func TestUpdateUsesPatch(t *testing.T) {
	srv := apitest.NewServer(t, map[string]any{"id": 11, "parent_id": 2})
	parent := int64(2)

	sub, err := New(srv.Client()).Update(context.Background(), 11, domain.Patch{ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, int64(11), sub.ID)

	req := srv.Last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/sub-categories/11", req.Path)
	assert.Equal(t, map[string]any{"parent_id": 2.0}, req.JSON(t))
}
