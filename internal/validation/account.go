package validation

import "ecomm/internal/model"

type accountFields struct {
	CustomerID *uint   `json:"customer_id"`
	Username   *string `json:"username" validate:"omitnil,min=1,max=255"`
	Email      *string `json:"email" validate:"omitnil,email,max=320"`
	Password   *string `json:"password" validate:"omitnil,min=1,max=72"`
}

func decodeAccount(d *decoder) accountFields {
	return accountFields{
		CustomerID: decodeField[uint](d, "customer_id", "a non-negative integer"),
		Username:   decodeField[string](d, "username", "a string"),
		Email:      decodeField[string](d, "email", "a string"),
		Password:   decodeField[string](d, "password", "a string"),
	}
}

// Account validates an account creation payload.
func (v *Validator) Account(rec Record) (model.AccountDraft, error) {
	d := newDecoder(rec)
	f := decodeAccount(d)
	d.require("customer_id", "username", "email", "password")
	if err := v.finish(d, f); err != nil {
		return model.AccountDraft{}, err
	}
	return model.AccountDraft{
		CustomerID: *f.CustomerID,
		Username:   *f.Username,
		Email:      *f.Email,
		Password:   *f.Password,
	}, nil
}

// AccountPatch validates a partial account update. The owning customer cannot be changed.
func (v *Validator) AccountPatch(rec Record) (model.AccountPatch, error) {
	d := newDecoder(rec)
	f := decodeAccount(d)
	if f.CustomerID != nil {
		d.fields["customer_id"] = "cannot be changed"
	}
	if err := v.finish(d, f); err != nil {
		return model.AccountPatch{}, err
	}
	return model.AccountPatch{Username: f.Username, Email: f.Email, Password: f.Password}, nil
}
