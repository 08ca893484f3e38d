package model

import "time"

// Account holds the login credentials of a customer. One-to-one with Customer.
type Account struct {
	ID           uint      `json:"account_id" gorm:"primaryKey;column:account_id"`
	CustomerID   uint      `json:"customer_id" gorm:"not null;uniqueIndex"`
	Username     string    `json:"username" gorm:"size:255;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table name used by the storefront schema.
func (Account) TableName() string {
	return "customer_accounts"
}

// AccountDraft is a validated account creation request. Password is the cleartext
// secret and must be hashed before it reaches the store.
type AccountDraft struct {
	CustomerID uint
	Username   string
	Email      string
	Password   string
}

// AccountPatch carries the fields of a partial account update.
type AccountPatch struct {
	Username *string
	Email    *string
	Password *string
}

// Apply merges username and email into a. The password is hashed and set by the caller.
func (p AccountPatch) Apply(a *Account) {
	if p.Username != nil {
		a.Username = *p.Username
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
}
