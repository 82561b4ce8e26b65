package mockserver

import (
	"backoffice/domain/configuration"
	"backoffice/mockserver/response"

	"github.com/gin-gonic/gin"
)

// GET /api/configurations
func (s *Server) getConfiguration(c *gin.Context) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	if s.data.configuration.ID == 0 {
		response.Fail(c, notFound("configuration", 0))
		return
	}
	response.OK(c, s.data.configuration, "Configuration fetched successfully")
}

// PATCH /api/configurations/:id
func (s *Server) updateConfiguration(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var patch configuration.Patch
	if !bind(c, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if s.data.configuration.ID != id {
		response.Fail(c, notFound("configuration", id))
		return
	}
	updated := patch.Apply(s.data.configuration)
	s.data.touch(&updated.Timestamps)
	s.data.configuration = updated
	response.OK(c, updated, "Configuration updated successfully")
}
