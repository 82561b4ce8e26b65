package store

import (
	"context"
	"testing"

	"backoffice/api"
	productapi "backoffice/api/product"
	"backoffice/domain/product"
	apperrors "backoffice/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededProducts(t *testing.T) (*Products, *fakeVariantAPI) {
	t.Helper()
	def := int64(10)
	fake := &fakeProductAPI{products: map[int64]product.Product{
		1: {ID: 1, DefaultVariantID: &def, Variants: []product.Variant{
			{ID: 10, ProductID: 1, Name: "1kg", DefaultVariant: true},
			{ID: 11, ProductID: 1, Name: "5kg"},
		}},
	}}
	variants := &fakeVariantAPI{nextID: 20}
	s := NewProducts(fake, variants, &recorder{}, 30)
	require.NoError(t, s.Fetch(context.Background(), api.ListParams{}, productapi.ListFilter{}))
	return s, variants
}

func variantInput(productID int64, isDefault bool) product.VariantInput {
	return product.VariantInput{
		ProductID:      productID,
		DisplayLabel:   "10 kg",
		Name:           "10kg",
		MRP:            1000,
		Price:          900,
		Images:         []string{"https://cdn.test/r.png"},
		DefaultVariant: isDefault,
	}
}

func TestDeleteDefaultVariantRefused(t *testing.T) {
	s, variants := seededProducts(t)

	assert.False(t, s.CanRemoveVariant(1, 10))
	err := s.DeleteVariant(context.Background(), 1, 10)

	assert.True(t, apperrors.Is(err, apperrors.CodeLogical))
	assert.Empty(t, variants.deleted, "no request for a refused removal")
}

func TestDeleteVariant(t *testing.T) {
	s, variants := seededProducts(t)

	assert.True(t, s.CanRemoveVariant(1, 11))
	require.NoError(t, s.DeleteVariant(context.Background(), 1, 11))

	assert.Equal(t, []int64{11}, variants.deleted)
	p, _ := s.List().Find(1)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, int64(10), p.Variants[0].ID)
}

func TestCreateDefaultVariantMovesFlag(t *testing.T) {
	s, _ := seededProducts(t)

	v, err := s.CreateVariant(context.Background(), variantInput(1, true))
	require.NoError(t, err)

	p, _ := s.List().Find(1)
	require.Len(t, p.Variants, 3)
	assert.Equal(t, v.ID, p.Variants[0].ID, "new variants go first")
	require.NoError(t, p.CheckDefaultInvariant())
	assert.Equal(t, v.ID, *p.DefaultVariantID)
}

func TestCreateVariantValidation(t *testing.T) {
	s, variants := seededProducts(t)
	in := variantInput(1, false)
	in.Price = 2000

	_, err := s.CreateVariant(context.Background(), in)
	require.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Contains(t, apperrors.AsAppError(err).Fields, "price")
	assert.Equal(t, int64(20), variants.nextID)
}

func TestCreateProductPrepends(t *testing.T) {
	s, _ := seededProducts(t)
	p, err := s.Create(context.Background(), product.Input{Variants: []product.VariantInput{variantInput(0, true)}})
	require.NoError(t, err)
	assert.Equal(t, p.ID, s.List().Items()[0].ID)

	_, err = s.Create(context.Background(), product.Input{Variants: []product.VariantInput{variantInput(0, false)}})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestUpdateVariantCannotClearCurrentDefault(t *testing.T) {
	s, variants := seededProducts(t)

	_, err := s.UpdateVariant(context.Background(), 10, variantInput(1, false))
	require.True(t, apperrors.Is(err, apperrors.CodeLogical))
	assert.Empty(t, variants.updated)

	p, _ := s.List().Find(1)
	require.NoError(t, p.CheckDefaultInvariant())
	assert.True(t, p.Variants[0].DefaultVariant)
}

func TestUpdateVariantMovesDefault(t *testing.T) {
	s, variants := seededProducts(t)

	_, err := s.UpdateVariant(context.Background(), 11, variantInput(1, true))
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, variants.updated)

	p, _ := s.List().Find(1)
	require.NoError(t, p.CheckDefaultInvariant())
	def, _ := p.DefaultVariant()
	assert.Equal(t, int64(11), def.ID)
}

func TestFirstVariantMustBeDefault(t *testing.T) {
	s, variants := seededProducts(t)
	empty, err := s.Create(context.Background(), product.Input{})
	require.NoError(t, err)

	_, err = s.CreateVariant(context.Background(), variantInput(empty.ID, false))
	require.True(t, apperrors.Is(err, apperrors.CodeLogical))
	assert.Equal(t, int64(20), variants.nextID, "no request for a refused create")

	v, err := s.CreateVariant(context.Background(), variantInput(empty.ID, true))
	require.NoError(t, err)
	p, _ := s.List().Find(empty.ID)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, v.ID, p.Variants[0].ID)
	require.NoError(t, p.CheckDefaultInvariant())
}
