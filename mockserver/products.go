package mockserver

import (
	"slices"
	"strconv"

	"backoffice/domain/product"
	"backoffice/mockserver/response"
	"backoffice/pkg/errors"

	"github.com/gin-gonic/gin"
)

func productKey(p product.Product) int64 { return p.ID }

func productMatches(p product.Product, lq listQuery, categoryID int64) bool {
	names := make([]string, 0, len(p.Variants)*2)
	inCategory := categoryID == 0
	for _, v := range p.Variants {
		names = append(names, v.Name, v.BrandName)
		if slices.Contains(v.CategoryIDs, categoryID) || slices.Contains(v.SubcategoryIDs, categoryID) {
			inCategory = true
		}
	}
	return inCategory && lq.matches(names...)
}

// GET /api/products
func (s *Server) listProducts(c *gin.Context) {
	lq := parseListQuery(c)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)

	s.data.mu.RLock()
	items := filter(s.data.products, func(p product.Product) bool { return productMatches(p, lq, categoryID) })
	s.data.mu.RUnlock()

	page, meta := paginate(items, lq)
	response.Paginated(c, page, meta, "Products fetched successfully")
}

// GET /api/products/:id
func (s *Server) getProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	i := indexOf(s.data.products, productKey, id)
	if i < 0 {
		response.Fail(c, notFound("product", id))
		return
	}
	response.OK(c, s.data.products[i], "Product fetched successfully")
}

// POST /api/products
func (s *Server) createProduct(c *gin.Context) {
	var in product.Input
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	p := product.Product{ID: s.data.id(), OutOfStock: in.OutOfStock, Timestamps: s.data.stamp()}
	p = s.data.withVariants(p, in.Variants)
	s.data.products = append([]product.Product{p}, s.data.products...)
	response.Created(c, p, "Product created successfully")
}

// PUT /api/products/:id replaces the product. A non-empty variants list
// replaces the variant set as well.
func (s *Server) replaceProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var in product.Input
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.products, productKey, id)
	if i < 0 {
		response.Fail(c, notFound("product", id))
		return
	}
	p := s.data.products[i]
	p.OutOfStock = in.OutOfStock
	if len(in.Variants) > 0 {
		p = s.data.withVariants(p, in.Variants)
	}
	s.data.touch(&p.Timestamps)
	s.data.products[i] = p
	response.OK(c, p, "Product updated successfully")
}

// DELETE /api/products/:id
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.products, productKey, id)
	if i < 0 {
		response.Fail(c, notFound("product", id))
		return
	}
	s.data.products = slices.Delete(s.data.products, i, i+1)
	response.OK(c, nil, "Product deleted successfully")
}

// withVariants replaces p's variants with freshly numbered ones. Callers hold mu.
func (d *Data) withVariants(p product.Product, inputs []product.VariantInput) product.Product {
	p.Variants = make([]product.Variant, 0, len(inputs))
	p.DefaultVariantID = nil
	for _, in := range inputs {
		v := variantFrom(d.id(), p.ID, in)
		p.Variants = append(p.Variants, v)
		if v.DefaultVariant {
			id := v.ID
			p.DefaultVariantID = &id
		}
	}
	return p
}

func variantFrom(id, productID int64, in product.VariantInput) product.Variant {
	in.ProductID = productID
	return in.Variant(id)
}

// variantOwner finds the product holding variantID. Callers hold mu.
func (d *Data) variantOwner(variantID int64) (int, bool) {
	for i, p := range d.products {
		for _, v := range p.Variants {
			if v.ID == variantID {
				return i, true
			}
		}
	}
	return -1, false
}

// POST /api/variants
func (s *Server) createVariant(c *gin.Context) {
	var in product.VariantInput
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i := indexOf(s.data.products, productKey, in.ProductID)
	if i < 0 {
		response.Fail(c, notFound("product", in.ProductID))
		return
	}
	p := s.data.products[i]
	v := variantFrom(s.data.id(), p.ID, in)
	if len(p.Variants) == 0 {
		v.DefaultVariant = true
	}
	p = p.WithVariant(v)
	s.data.touch(&p.Timestamps)
	s.data.products[i] = p
	response.Created(c, v, "Variant created successfully")
}

// PUT /api/variants/:id
func (s *Server) replaceVariant(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var in product.VariantInput
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i, ok := s.data.variantOwner(id)
	if !ok {
		response.Fail(c, notFound("variant", id))
		return
	}
	p := s.data.products[i]
	if in.ProductID != p.ID {
		response.Fail(c, errors.Logical("a variant cannot be moved to another product"))
		return
	}
	current := p.Variants[indexOf(p.Variants, product.Variant.Key, id)]
	if current.DefaultVariant && !in.DefaultVariant {
		response.Fail(c, errors.Logical("cannot unset the default variant; mark another variant as default instead"))
		return
	}

	v := variantFrom(id, p.ID, in)
	p = p.WithVariant(v)
	s.data.touch(&p.Timestamps)
	s.data.products[i] = p
	response.OK(c, v, "Variant updated successfully")
}

// DELETE /api/variants/:id
func (s *Server) deleteVariant(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	i, ok := s.data.variantOwner(id)
	if !ok {
		response.Fail(c, notFound("variant", id))
		return
	}
	p := s.data.products[i]
	if err := p.CanRemoveVariant(id); err != nil {
		response.Fail(c, err)
		return
	}
	p = p.WithoutVariant(id)
	s.data.touch(&p.Timestamps)
	s.data.products[i] = p
	response.OK(c, nil, "Variant deleted successfully")
}
