package handler

import "ecomm/internal/model"

// CustomerView is the response record of a customer.
type CustomerView struct {
	CustomerID uint   `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// AccountView is the response record of an account. The password hash never leaves the service.
type AccountView struct {
	AccountID  uint   `json:"account_id"`
	CustomerID uint   `json:"customer_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

// ProductView is the response record of a product.
type ProductView struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"image_url"`
	Type      string  `json:"type"`
}

// OrderView is the response record of an order with its product ids.
type OrderView struct {
	OrderID    uint   `json:"order_id"`
	CustomerID uint   `json:"customer_id"`
	Date       string `json:"date"`
	Products   []uint `json:"products"`
}

func customerView(c *model.Customer) CustomerView {
	return CustomerView{CustomerID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func customerViews(cs []model.Customer) []CustomerView {
	out := make([]CustomerView, len(cs))
	for i := range cs {
		out[i] = customerView(&cs[i])
	}
	return out
}

func accountView(a *model.Account) AccountView {
	return AccountView{AccountID: a.ID, CustomerID: a.CustomerID, Username: a.Username, Email: a.Email}
}

func accountViews(as []model.Account) []AccountView {
	out := make([]AccountView, len(as))
	for i := range as {
		out[i] = accountView(&as[i])
	}
	return out
}

func productView(p *model.Product) ProductView {
	return ProductView{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		ImageURL:  p.ImageURL,
		Type:      p.Type,
	}
}

func productViews(ps []model.Product) []ProductView {
	out := make([]ProductView, len(ps))
	for i := range ps {
		out[i] = productView(&ps[i])
	}
	return out
}

func orderView(o *model.Order) OrderView {
	products := o.ProductIDs
	if products == nil {
		products = []uint{}
	}
	return OrderView{OrderID: o.ID, CustomerID: o.CustomerID, Date: o.Date.String(), Products: products}
}

func orderViews(orders []model.Order) []OrderView {
	out := make([]OrderView, len(orders))
	for i := range orders {
		out[i] = orderView(&orders[i])
	}
	return out
}
