package model

import "time"

// Customer is a shopper. A customer owns at most one Account and any number of Orders.
type Customer struct {
	ID        uint      `json:"customer_id" gorm:"primaryKey;column:customer_id"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email" gorm:"size:320;not null;index"`
	Phone     string    `json:"phone" gorm:"size:15"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. The foreign keys live on customer_accounts and orders.
	Account *Account `json:"-" gorm:"foreignKey:CustomerID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Orders  []Order  `json:"-" gorm:"foreignKey:CustomerID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// CustomerPatch carries the fields of a partial customer update. Nil fields are left untouched.
type CustomerPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// Apply merges the supplied fields into c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}
