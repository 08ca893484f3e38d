package validation

import "ecomm/internal/model"

type customerFields struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=255"`
	Email *string `json:"email" validate:"omitnil,email,max=320"`
	Phone *string `json:"phone" validate:"omitnil,max=15"`
}

func decodeCustomer(d *decoder) customerFields {
	return customerFields{
		Name:  decodeField[string](d, "name", "a string"),
		Email: decodeField[string](d, "email", "a string"),
		Phone: decodeField[string](d, "phone", "a string"),
	}
}

// Customer validates a customer creation payload.
func (v *Validator) Customer(rec Record) (*model.Customer, error) {
	d := newDecoder(rec)
	f := decodeCustomer(d)
	d.require("name", "email", "phone")
	if err := v.finish(d, f); err != nil {
		return nil, err
	}
	return &model.Customer{Name: *f.Name, Email: *f.Email, Phone: *f.Phone}, nil
}

// CustomerPatch validates a partial customer update.
func (v *Validator) CustomerPatch(rec Record) (model.CustomerPatch, error) {
	d := newDecoder(rec)
	f := decodeCustomer(d)
	if err := v.finish(d, f); err != nil {
		return model.CustomerPatch{}, err
	}
	return model.CustomerPatch{Name: f.Name, Email: f.Email, Phone: f.Phone}, nil
}
