package mockserver

import (
	"strings"

	"backoffice/domain/user"
	"backoffice/mockserver/response"

	"github.com/gin-gonic/gin"
)

// GET /api/users/all
func (s *Server) listUsers(c *gin.Context) {
	lq := parseListQuery(c)
	phone := strings.TrimSpace(c.Query("phone_number"))

	s.data.mu.RLock()
	items := filter(s.data.users, func(u user.User) bool {
		if phone != "" && !strings.Contains(u.PhoneNumber, phone) {
			return false
		}
		return lq.matches(u.PhoneNumber, u.Email, u.DisplayName())
	})
	s.data.mu.RUnlock()

	page, meta := paginate(items, lq)
	response.Paginated(c, page, meta, "Users fetched successfully")
}
