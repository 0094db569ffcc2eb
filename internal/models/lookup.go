package models

// UserProfile is the payload returned by the user-lookup service.
type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName joins first and last name with a single space.
func (u UserProfile) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ProductInfo is the payload returned by the product-lookup service.
type ProductInfo struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
