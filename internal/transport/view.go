package transport

import "github.com/Skotchmaster/feb_ecommerce/internal/models"

// OwnerView is the user as seen from a product: name and email only.
type OwnerView struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type ProductView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	User        OwnerView `json:"user"`
}

// OwnedProductView is a product nested under its owner, without the
// back-reference.
type OwnedProductView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

type UserView struct {
	ID       uint               `json:"id"`
	Name     *string            `json:"name"`
	Email    string             `json:"email"`
	IsAdmin  bool               `json:"is_admin"`
	Products []OwnedProductView `json:"products"`
}

func NewOwnerView(u models.User) OwnerView {
	return OwnerView{Name: u.Name, Email: u.Email}
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		User:        NewOwnerView(p.Owner),
	}
}

func NewProductViews(items []models.Product) []ProductView {
	out := make([]ProductView, 0, len(items))
	for _, p := range items {
		out = append(out, NewProductView(p))
	}
	return out
}

func NewOwnedProductView(p models.Product) OwnedProductView {
	return OwnedProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

func NewUserView(u models.User, products []models.Product) UserView {
	owned := make([]OwnedProductView, 0, len(products))
	for _, p := range products {
		owned = append(owned, NewOwnedProductView(p))
	}
	return UserView{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		Products: owned,
	}
}
