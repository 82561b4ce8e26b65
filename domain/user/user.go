// Package user models storefront customers; the back office only lists them.
package user

// User Read-only customer record
type User struct {
	ID          int64   `json:"id"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
}

func (u User) Key() int64 { return u.ID }

// DisplayName falls back to the phone number when no name is on file.
func (u User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		return u.PhoneNumber
	}
	return name
}

// ListFilter Resource-specific filters of GET /api/users/all
type ListFilter struct {
	PhoneNumber string
}
