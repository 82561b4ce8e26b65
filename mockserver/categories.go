package mockserver

import (
	"cmp"
	"slices"
	"strings"

	"backoffice/domain/category"
	"backoffice/mockserver/response"
	"backoffice/pkg/errors"

	"github.com/gin-gonic/gin"
)

func categoryKey(c category.Category) int64       { return c.ID }
func subCategoryKey(c category.SubCategory) int64 { return c.ID }

func priorityOf(c category.Category) int {
	if c.Priority == nil {
		return 0
	}
	return *c.Priority
}

// GET /api/categories
func (s *Server) listCategories(c *gin.Context) {
	lq := parseListQuery(c)

	s.data.mu.RLock()
	items := filter(s.data.categories, func(cat category.Category) bool { return lq.matches(cat.Name) })
	s.data.mu.RUnlock()

	if c.Query("sort_by") == "priority" {
		desc := strings.EqualFold(c.Query("sort_order"), "DESC")
		slices.SortStableFunc(items, func(a, b category.Category) int {
			if desc {
				return cmp.Compare(priorityOf(b), priorityOf(a))
			}
			return cmp.Compare(priorityOf(a), priorityOf(b))
		})
	}

	page, meta := paginate(items, lq)
	response.Paginated(c, page, meta, "Categories fetched successfully")
}

// GET /api/categories/:id
func (s *Server) getCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	i := indexOf(s.data.categories, categoryKey, id)
	if i < 0 {
		response.Fail(c, notFound("category", id))
		return
	}
	response.OK(c, s.data.categories[i], "Category fetched successfully")
}

// POST /api/categories
func (s *Server) createCategory(c *gin.Context) {
	var in category.Input
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	created := category.Category{
		ID:         s.data.id(),
		Name:       strings.TrimSpace(in.Name),
		Image:      in.Image,
		Priority:   in.Priority,
		Timestamps: s.data.stamp(),
	}
	s.data.categories = append([]category.Category{created}, s.data.categories...)
	s.data.mu.Unlock()

	response.Created(c, created, "Category created successfully")
}

// PATCH /api/categories/:id
func (s *Server) updateCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var patch category.Patch
	if !bind(c, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.categories, categoryKey, id)
	if i < 0 {
		response.Fail(c, notFound("category", id))
		return
	}
	updated := applyCategoryPatch(s.data.categories[i], patch)
	s.data.touch(&updated.Timestamps)
	s.data.categories[i] = updated
	response.OK(c, updated, "Category updated successfully")
}

// DELETE /api/categories/:id
func (s *Server) deleteCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.categories, categoryKey, id)
	if i < 0 {
		response.Fail(c, notFound("category", id))
		return
	}
	for _, sub := range s.data.subcategories {
		if sub.ParentID != nil && *sub.ParentID == id {
			response.Fail(c, errors.Logical("category still has sub-categories"))
			return
		}
	}
	s.data.categories = slices.Delete(s.data.categories, i, i+1)
	response.OK(c, nil, "Category deleted successfully")
}

func applyCategoryPatch(cat category.Category, p category.Patch) category.Category {
	if p.Name != nil {
		cat.Name = strings.TrimSpace(*p.Name)
	}
	if p.Image != nil {
		cat.Image = *p.Image
	}
	if p.Priority != nil {
		v := *p.Priority
		cat.Priority = &v
	}
	return cat
}

// GET /api/sub-categories
//
// parent_ids=1,2,3 narrows to children of those categories and, like the
// real backend, returns every match on one page.
func (s *Server) listSubCategories(c *gin.Context) {
	lq := parseListQuery(c)

	var parents map[int64]bool
	if raw, ok := c.GetQuery("parent_ids"); ok {
		ids, err := parseIDs(raw)
		if err != nil {
			response.Fail(c, err)
			return
		}
		parents = ids
	}

	s.data.mu.RLock()
	items := filter(s.data.subcategories, func(sub category.SubCategory) bool {
		if parents != nil && (sub.ParentID == nil || !parents[*sub.ParentID]) {
			return false
		}
		return lq.matches(sub.Name)
	})
	s.data.mu.RUnlock()

	if parents != nil && c.Query("limit") == "" {
		lq.page, lq.limit = 1, max(len(items), 1)
	}
	page, meta := paginate(items, lq)
	response.Paginated(c, page, meta, "Sub-categories fetched successfully")
}

// GET /api/sub-categories/:id
func (s *Server) getSubCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	i := indexOf(s.data.subcategories, subCategoryKey, id)
	if i < 0 {
		response.Fail(c, notFound("sub-category", id))
		return
	}
	response.OK(c, s.data.subcategories[i], "Sub-category fetched successfully")
}

// POST /api/sub-categories
func (s *Server) createSubCategory(c *gin.Context) {
	var in category.SubInput
	if !bind(c, &in) {
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if err := in.Validate(s.data.categories); err != nil {
		response.Fail(c, err)
		return
	}
	created := category.SubCategory{
		Category: category.Category{
			ID:         s.data.id(),
			Name:       strings.TrimSpace(in.Name),
			Image:      in.Image,
			Priority:   in.Priority,
			Timestamps: s.data.stamp(),
		},
		ParentID: in.ParentID,
	}
	s.data.subcategories = append([]category.SubCategory{created}, s.data.subcategories...)
	response.Created(c, created, "Sub-category created successfully")
}

// PATCH /api/sub-categories/:id
func (s *Server) updateSubCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var patch category.Patch
	if !bind(c, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.subcategories, subCategoryKey, id)
	if i < 0 {
		response.Fail(c, notFound("sub-category", id))
		return
	}
	if patch.ParentID != nil && indexOf(s.data.categories, categoryKey, *patch.ParentID) < 0 {
		response.Fail(c, errors.Validation(map[string]string{"parent_id": "must reference an existing category"}))
		return
	}

	updated := s.data.subcategories[i]
	updated.Category = applyCategoryPatch(updated.Category, patch)
	if patch.ParentID != nil {
		parent := *patch.ParentID
		updated.ParentID = &parent
	}
	s.data.touch(&updated.Timestamps)
	s.data.subcategories[i] = updated
	response.OK(c, updated, "Sub-category updated successfully")
}

// DELETE /api/sub-categories/:id
func (s *Server) deleteSubCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.subcategories, subCategoryKey, id)
	if i < 0 {
		response.Fail(c, notFound("sub-category", id))
		return
	}
	s.data.subcategories = slices.Delete(s.data.subcategories, i, i+1)
	response.OK(c, nil, "Sub-category deleted successfully")
}
