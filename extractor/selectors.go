package extractor

import "github.com/andybalholm/cascadia"

// Selectors holds the CSS markers that identify a product card and the
// fields inside it. Each field selector is matched against the card's
// descendants and only the first match is used.
type Selectors struct {
	Card  string
	Title string
	Price string
	Image string
}

// DefaultSelectors match the Magento listing markup on phonelcdparts.com.
var DefaultSelectors = Selectors{
	Card:  "form.product_addtocart_form",
	Title: "a.product-item-link",
	Price: "span.price",
	Image: "img.product-image-photo",
}

// compiled is Selectors after cascadia parsing.
type compiled struct {
	card  cascadia.Selector
	title cascadia.Selector
	price cascadia.Selector
	image cascadia.Selector
}

func compile(s Selectors) (*compiled, error) {
	var c compiled
	for _, f := range []struct {
		src string
		dst *cascadia.Selector
	}{
		{s.Card, &c.card},
		{s.Title, &c.title},
		{s.Price, &c.price},
		{s.Image, &c.image},
	} {
		sel, err := cascadia.Compile(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = sel
	}
	return &c, nil
}
