package user

import (
	"context"
	"testing"

	"backoffice/api"
	"backoffice/api/apitest"
	domain "backoffice/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	srv := apitest.NewServer(t, nil)
	srv.Reply(200, map[string]any{
		"success": true,
		"data":    []map[string]any{{"id": 1, "phone_number": "9999999999", "email": "a@b.test"}},
		"meta":    map[string]any{"page": 1, "pageSize": 30, "totalItems": 1, "totalPages": 1},
	})

	page, err := New(srv.Client()).List(context.Background(), api.ListParams{Q: "asha"}, domain.ListFilter{PhoneNumber: "9999999999"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 30, page.Pagination.PageSize, "pageSize spelling is accepted")
	assert.Equal(t, "/api/users/all", srv.Last(t).Path)
	assert.Equal(t, "page=1&limit=30&q=asha&phone_number=9999999999", srv.Last(t).RawQuery)
}
