package validation

import "ecomm/internal/model"

type orderFields struct {
	CustomerID *uint   `json:"customer_id"`
	Date       *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Products   *[]uint `json:"products"`
}

func decodeOrder(d *decoder) orderFields {
	return orderFields{
		CustomerID: decodeField[uint](d, "customer_id", "a non-negative integer"),
		Date:       decodeField[string](d, "date", "a string"),
		Products:   decodeField[[]uint](d, "products", "an array of product ids"),
	}
}

// Order validates an order creation payload. An empty or missing product list passes
// validation; refusing it is the order workflow's decision.
func (v *Validator) Order(rec Record) (model.OrderDraft, error) {
	d := newDecoder(rec)
	f := decodeOrder(d)
	d.require("customer_id", "date")
	if err := v.finish(d, f); err != nil {
		return model.OrderDraft{}, err
	}
	date, err := model.ParseDate(*f.Date)
	if err != nil {
		return model.OrderDraft{}, toError(map[string]string{"date": "must be an ISO date (YYYY-MM-DD)"})
	}
	draft := model.OrderDraft{CustomerID: *f.CustomerID, Date: date}
	if f.Products != nil {
		draft.ProductIDs = *f.Products
	}
	return draft, nil
}

// OrderPatch validates a partial order update.
func (v *Validator) OrderPatch(rec Record) (model.OrderPatch, error) {
	d := newDecoder(rec)
	f := decodeOrder(d)
	if err := v.finish(d, f); err != nil {
		return model.OrderPatch{}, err
	}
	patch := model.OrderPatch{CustomerID: f.CustomerID, ProductIDs: f.Products}
	if f.Date != nil {
		date, err := model.ParseDate(*f.Date)
		if err != nil {
			return model.OrderPatch{}, toError(map[string]string{"date": "must be an ISO date (YYYY-MM-DD)"})
		}
		patch.Date = &date
	}
	return patch, nil
}
