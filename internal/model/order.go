package model

import "time"

// Order is a dated purchase by one customer of a set of distinct products.
type Order struct {
	ID         uint      `json:"order_id" gorm:"primaryKey;column:order_id"`
	Date       Date      `json:"date" gorm:"type:date;not null"`
	CustomerID uint      `json:"customer_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// ProductIDs is loaded from order_product, ascending. Not a column.
	ProductIDs []uint `json:"products" gorm:"-"`
}

// OrderProduct is one association row: the product is part of the order.
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey;autoIncrement:false"`
	ProductID uint `gorm:"primaryKey;autoIncrement:false;index"`

	// Relations
	Order   *Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// TableName returns the join table name.
func (OrderProduct) TableName() string {
	return "order_product"
}

// OrderDraft is a validated order creation request.
type OrderDraft struct {
	CustomerID uint
	Date       Date
	ProductIDs []uint
}

// OrderPatch carries the fields of a partial order update. A non-nil ProductIDs
// replaces the whole product set.
type OrderPatch struct {
	CustomerID *uint
	Date       *Date
	ProductIDs *[]uint
}

// Apply merges the scalar fields into o. The product set is replaced separately
// through the association rows.
func (p OrderPatch) Apply(o *Order) {
	if p.CustomerID != nil {
		o.CustomerID = *p.CustomerID
	}
	if p.Date != nil {
		o.Date = *p.Date
	}
}

// DistinctProductIDs returns ids with duplicates removed, keeping first-seen order.
func DistinctProductIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AllModels lists the persisted models in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Customer{},
		&Account{},
		&Product{},
		&Order{},
		&OrderProduct{},
	}
}
