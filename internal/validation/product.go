package validation

import (
	"github.com/shopspring/decimal"

	"ecomm/internal/model"
)

type productFields struct {
	Name     *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Price    *float64 `json:"price" validate:"omitnil,gte=0,lt=100000000"`
	ImageURL *string  `json:"image_url" validate:"omitnil,url,max=255"`
	Type     *string  `json:"type" validate:"omitnil,max=100"`
}

func decodeProduct(d *decoder) productFields {
	return productFields{
		Name:     decodeField[string](d, "name", "a string"),
		Price:    decodeField[float64](d, "price", "a number"),
		ImageURL: decodeField[string](d, "image_url", "a string"),
		Type:     decodeField[string](d, "type", "a string"),
	}
}

// checkable drops an empty image URL, which means "no image" rather than a malformed URL.
func (f productFields) checkable() productFields {
	if f.ImageURL != nil && *f.ImageURL == "" {
		f.ImageURL = nil
	}
	return f
}

// priceScale is the number of decimal places a price may carry, matching decimal(10,2).
const priceScale = 2

func toPrice(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// checkPriceScale flags prices the column would have to round.
func checkPriceScale(d *decoder, price *float64) {
	if price == nil {
		return
	}
	if p := toPrice(*price); !p.Round(priceScale).Equal(p) {
		d.fields["price"] = "must have at most 2 decimal places"
	}
}

// Product validates a product creation payload.
func (v *Validator) Product(rec Record) (*model.Product, error) {
	d := newDecoder(rec)
	f := decodeProduct(d)
	d.require("name", "price")
	checkPriceScale(d, f.Price)
	if err := v.finish(d, f.checkable()); err != nil {
		return nil, err
	}
	p := &model.Product{Name: *f.Name, Price: toPrice(*f.Price)}
	if f.ImageURL != nil && *f.ImageURL != "" {
		p.ImageURL = f.ImageURL
	}
	if f.Type != nil {
		p.Type = *f.Type
	}
	return p, nil
}

// ProductPatch validates a partial product update.
func (v *Validator) ProductPatch(rec Record) (model.ProductPatch, error) {
	d := newDecoder(rec)
	f := decodeProduct(d)
	checkPriceScale(d, f.Price)
	if err := v.finish(d, f.checkable()); err != nil {
		return model.ProductPatch{}, err
	}
	patch := model.ProductPatch{Name: f.Name, ImageURL: f.ImageURL, Type: f.Type}
	if f.Price != nil {
		price := toPrice(*f.Price)
		patch.Price = &price
	}
	return patch, nil
}
