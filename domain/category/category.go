// Package category models categories and their one-level sub-categories.
package category

import (
	"backoffice/domain/shared"
	"backoffice/pkg/errors"
	"backoffice/pkg/validation"
)

// Category Top-level catalogue node
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Priority *int   `json:"priority,omitempty"`
	shared.Timestamps
}

func (c Category) Key() int64 { return c.ID }

// SubCategory A category with a parent; ParentID nil means top-level.
type SubCategory struct {
	Category
	ParentID *int64 `json:"parent_id"`
}

func (s SubCategory) Key() int64 { return s.ID }

// IsTopLevel reports whether the record has no parent.
func (s SubCategory) IsTopLevel() bool { return s.ParentID == nil }

// Input Create/update payload for categories
type Input struct {
	Name     string `json:"name" validate:"required,max=120"`
	Image    string `json:"image" validate:"required,url"`
	Priority *int   `json:"priority,omitempty" validate:"omitempty,gte=0"`
}

func (in Input) Validate() error {
	return validation.Struct(in)
}

// SubInput Create/update payload for sub-categories
type SubInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Image    string `json:"image" validate:"required,url"`
	Priority *int   `json:"priority,omitempty" validate:"omitempty,gte=0"`
	ParentID *int64 `json:"parent_id"`
}

// Validate checks the payload and that ParentID references one of known, when known is non-nil.
func (in SubInput) Validate(known []Category) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	return CheckParent(in.ParentID, known)
}

// CheckParent fails when parentID is set, known is non-nil, and no category in
// known has that id. A nil known means the full category set is not at hand.
func CheckParent(parentID *int64, known []Category) error {
	if parentID == nil || known == nil {
		return nil
	}
	for _, c := range known {
		if c.ID == *parentID {
			return nil
		}
	}
	return errors.Validation(map[string]string{"parent_id": "must reference an existing category"})
}

// Patch Partial update payload; nil fields are left out of the request.
type Patch struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Image    *string `json:"image,omitempty" validate:"omitempty,url"`
	Priority *int    `json:"priority,omitempty" validate:"omitempty,gte=0"`
	ParentID *int64  `json:"parent_id,omitempty"`
}

func (p Patch) Validate() error {
	return validation.Struct(p)
}
