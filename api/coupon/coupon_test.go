package coupon

import (
	"context"
	"net/http"
	"testing"
	"time"

	"backoffice/api/apitest"
	domain "backoffice/domain/coupon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSendsCollapsedFixedCoupon(t *testing.T) {
	srv := apitest.NewServer(t, map[string]any{"id": 4, "offer_code": "FLAT50", "discount_type": "fixed", "discount_value": 50})
	in := domain.Input{
		OfferCode:     "FLAT50",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 50,
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}.Normalize()

	c, err := New(srv.Client()).Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)

	body := srv.Last(t).JSON(t)
	assert.Equal(t, 50.0, body["min_discount_value"])
	assert.Equal(t, 50.0, body["max_discount_value"])
	assert.Equal(t, "fixed", body["discount_type"])
}

func TestUpdateUsesPatch(t *testing.T) {
	srv := apitest.NewServer(t, map[string]any{"id": 4, "is_active": false})
	inactive := false

	c, err := New(srv.Client()).Update(context.Background(), 4, domain.Patch{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, c.IsActive)

	req := srv.Last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/coupons/4", req.Path)
	assert.Equal(t, map[string]any{"is_active": false}, req.JSON(t))
}
