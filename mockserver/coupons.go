package mockserver

import (
	"slices"
	"strings"

	"backoffice/domain/coupon"
	"backoffice/mockserver/response"
	"backoffice/pkg/errors"

	"github.com/gin-gonic/gin"
)

func couponKey(c coupon.Coupon) int64 { return c.ID }

// GET /api/coupons
func (s *Server) listCoupons(c *gin.Context) {
	lq := parseListQuery(c)

	s.data.mu.RLock()
	items := filter(s.data.coupons, func(cp coupon.Coupon) bool { return lq.matches(cp.OfferCode, cp.Description) })
	s.data.mu.RUnlock()

	page, meta := paginate(items, lq)
	response.Paginated(c, page, meta, "Coupons fetched successfully")
}

// GET /api/coupons/:id
func (s *Server) getCoupon(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	i := indexOf(s.data.coupons, couponKey, id)
	if i < 0 {
		response.Fail(c, notFound("coupon", id))
		return
	}
	response.OK(c, s.data.coupons[i], "Coupon fetched successfully")
}

// POST /api/coupons
func (s *Server) createCoupon(c *gin.Context) {
	var in coupon.Input
	if !bind(c, &in) {
		return
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if s.data.offerCodeTaken(in.OfferCode, 0) {
		response.Fail(c, duplicateCode())
		return
	}
	created := coupon.Coupon{
		ID:                s.data.id(),
		OfferCode:         strings.ToUpper(strings.TrimSpace(in.OfferCode)),
		Description:       in.Description,
		DiscountType:      in.DiscountType,
		DiscountValue:     in.DiscountValue,
		MinDiscountValue:  in.MinDiscountValue,
		MaxDiscountValue:  in.MaxDiscountValue,
		MinOrderValue:     in.MinOrderValue,
		OfferType:         in.OfferType,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		IsActive:          in.IsActive,
		UsageLimitPerUser: in.UsageLimitPerUser,
		Timestamps:        s.data.stamp(),
	}
	s.data.coupons = append([]coupon.Coupon{created}, s.data.coupons...)
	response.Created(c, created, "Coupon created successfully")
}

// PATCH /api/coupons/:id
func (s *Server) updateCoupon(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var patch coupon.Patch
	if !bind(c, &patch) {
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.coupons, couponKey, id)
	if i < 0 {
		response.Fail(c, notFound("coupon", id))
		return
	}
	current := s.data.coupons[i]
	patch = patch.Normalize(current)
	if err := patch.Validate(current); err != nil {
		response.Fail(c, err)
		return
	}
	if patch.OfferCode != nil && s.data.offerCodeTaken(*patch.OfferCode, id) {
		response.Fail(c, duplicateCode())
		return
	}

	updated := applyCouponPatch(current, patch)
	s.data.touch(&updated.Timestamps)
	s.data.coupons[i] = updated
	response.OK(c, updated, "Coupon updated successfully")
}

// DELETE /api/coupons/:id
func (s *Server) deleteCoupon(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.coupons, couponKey, id)
	if i < 0 {
		response.Fail(c, notFound("coupon", id))
		return
	}
	s.data.coupons = slices.Delete(s.data.coupons, i, i+1)
	response.OK(c, nil, "Coupon deleted successfully")
}

// offerCodeTaken ignores the coupon with id except. Callers hold mu.
func (d *Data) offerCodeTaken(code string, except int64) bool {
	for _, cp := range d.coupons {
		if cp.ID != except && strings.EqualFold(cp.OfferCode, strings.TrimSpace(code)) {
			return true
		}
	}
	return false
}

func duplicateCode() error {
	return errors.Validation(map[string]string{"offer_code": "is already in use"})
}

func applyCouponPatch(cp coupon.Coupon, p coupon.Patch) coupon.Coupon {
	if p.OfferCode != nil {
		cp.OfferCode = strings.ToUpper(strings.TrimSpace(*p.OfferCode))
	}
	if p.Description != nil {
		cp.Description = *p.Description
	}
	if p.DiscountType != nil {
		cp.DiscountType = *p.DiscountType
	}
	if p.DiscountValue != nil {
		cp.DiscountValue = *p.DiscountValue
	}
	if p.MinDiscountValue != nil {
		cp.MinDiscountValue = p.MinDiscountValue
	}
	if p.MaxDiscountValue != nil {
		cp.MaxDiscountValue = p.MaxDiscountValue
	}
	if p.MinOrderValue != nil {
		cp.MinOrderValue = *p.MinOrderValue
	}
	if p.OfferType != nil {
		cp.OfferType = *p.OfferType
	}
	if p.StartDate != nil {
		cp.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		cp.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		cp.IsActive = *p.IsActive
	}
	if p.UsageLimitPerUser != nil {
		cp.UsageLimitPerUser = p.UsageLimitPerUser
	}
	return cp
}
