package mockserver

import (
	"strings"
	"time"

	"backoffice/domain/order"
	"backoffice/mockserver/response"
	"backoffice/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func orderKey(o order.OrderDetail) int64 { return o.ID }

type statusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// GET /api/orders/all
func (s *Server) listOrders(c *gin.Context) {
	lq := parseListQuery(c)

	var status order.Status
	if raw := c.Query("status"); raw != "" {
		parsed, err := order.ParseStatus(raw)
		if err != nil {
			response.Fail(c, err)
			return
		}
		status = parsed
	}
	number := strings.TrimSpace(c.Query("order_number"))
	phone := strings.TrimSpace(c.Query("phone_number"))

	s.data.mu.RLock()
	items := make([]order.Order, 0, len(s.data.orders))
	for _, o := range s.data.orders {
		switch {
		case status != "" && o.Status != status:
		case number != "" && !strings.EqualFold(o.OrderNumber, number):
		case phone != "" && !strings.Contains(o.User.PhoneNumber, phone):
		case !lq.matches(o.OrderNumber, o.User.PhoneNumber):
		default:
			items = append(items, o.Summary())
		}
	}
	s.data.mu.RUnlock()

	page, meta := paginate(items, lq)
	response.Paginated(c, page, meta, "Orders fetched successfully")
}

// GET /api/orders/:id
func (s *Server) getOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	i := indexOf(s.data.orders, orderKey, id)
	if i < 0 {
		response.Fail(c, notFound("order", id))
		return
	}
	response.OK(c, s.data.orders[i], "Order fetched successfully")
}

// PATCH /api/orders/:id/status enforces the same transition whitelist the
// client checks before sending.
func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req statusRequest
	if !bind(c, &req) {
		return
	}
	next, err := order.ParseStatus(req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.orders, orderKey, id)
	if i < 0 {
		response.Fail(c, notFound("order", id))
		return
	}
	detail := s.data.orders[i]
	update, err := order.NewStatusUpdate(detail.Status, next, req.Comment)
	if err != nil {
		response.Fail(c, err)
		return
	}

	now := s.data.now().UTC()
	detail.Status = update.To()
	switch update.To() {
	case order.StatusDelivered:
		at := now.Format(time.RFC3339)
		detail.DeliveredAt = &at
	case order.StatusCancelled, order.StatusRejected:
		if update.Comment() != "" {
			reason := update.Comment()
			detail.CancellationReason = &reason
		}
	}
	detail.OrderHistories = append(append([]order.History(nil), detail.OrderHistories...), order.History{
		ID:        s.data.id(),
		Status:    update.To(),
		Comment:   update.Comment(),
		CreatedAt: now.Format(time.RFC3339),
	})
	s.data.touch(&detail.Timestamps)
	s.data.orders[i] = detail

	logger.FromContext(c.Request.Context()).Info("Order status changed",
		zap.Int64("order_id", id),
		zap.String("from", string(update.From())),
		zap.String("to", string(update.To())))

	response.OK(c, detail.Summary(), "Order status updated successfully")
}
