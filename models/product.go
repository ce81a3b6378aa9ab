package models

import "encoding/json"

// NotAvailable is the serialized form of a product field the listing
// markup did not provide.
const NotAvailable = "N/A"

// Field is a product attribute that is either present (possibly as an
// empty string) or not available. It always marshals to a JSON string.
type Field struct {
	value string
	ok    bool
}

// Value returns an available Field holding s verbatim.
func Value(s string) Field {
	return Field{value: s, ok: true}
}

// Missing returns a Field marked not available.
func Missing() Field {
	return Field{}
}

// Available reports whether the field was found in the markup.
func (f Field) Available() bool { return f.ok }

// String returns the field text, or NotAvailable.
func (f Field) String() string {
	if !f.ok {
		return NotAvailable
	}
	return f.value
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON treats the NotAvailable sentinel as a missing field.
func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == NotAvailable {
		*f = Missing()
		return nil
	}
	*f = Value(s)
	return nil
}

// Product is one listing card from a search result page.
type Product struct {
	Name     Field `json:"name"`
	Price    Field `json:"price"`
	URL      Field `json:"url"`
	ImageURL Field `json:"image_url"`
}

// NewProduct returns a Product with every field marked not available.
func NewProduct() Product {
	return Product{
		Name:     Missing(),
		Price:    Missing(),
		URL:      Missing(),
		ImageURL: Missing(),
	}
}
