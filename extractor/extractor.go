// Package extractor turns a catalog search result page into product records.
package extractor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/lcdparts/models"
	"golang.org/x/net/html"
)

// Extractor pulls product cards out of search result HTML.
// It holds only compiled selectors and is safe for concurrent use.
type Extractor struct {
	markers Selectors
	sel     *compiled
}

// New compiles the given selectors.
func New(s Selectors) (*Extractor, error) {
	c, err := compile(s)
	if err != nil {
		return nil, fmt.Errorf("extractor: compile selectors: %w", err)
	}
	return &Extractor{markers: s, sel: c}, nil
}

// NewDefault returns an Extractor for DefaultSelectors.
func NewDefault() *Extractor {
	ex, err := New(DefaultSelectors)
	if err != nil {
		panic(err)
	}
	return ex
}

var errNotElement = errors.New("card is not an element node")

// cardResult is the outcome for a single card: a product, or the reason
// the card was skipped.
type cardResult struct {
	index   int
	product models.Product
	err     error
}

// Extract returns one record per product card in document order.
//
// It never fails: unparseable input and pages without cards yield an
// empty (non-nil) slice, and a card that cannot be read is dropped whole
// while the rest are kept.
func (e *Extractor) Extract(rawHTML string) []models.Product {
	products := []models.Product{}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		slog.Warn("extractor: failed to parse HTML", "error", err)
		return products
	}
	doc := goquery.NewDocumentFromNode(root)

	cards := doc.FindMatcher(e.sel.card)
	if cards.Length() == 0 {
		slog.Info("extractor: no product cards found", "selector", e.markers.Card)
		return products
	}

	for _, r := range collect(cards, e.readCard) {
		if r.err != nil {
			slog.Warn("extractor: skipping product card", "index", r.index, "error", r.err)
			continue
		}
		products = append(products, r.product)
	}

	slog.Debug("extractor: cards extracted", "cards", cards.Length(), "products", len(products))
	return products
}

// collect runs read over every card, converting panics into skip results
// so one bad card cannot abort the page.
func collect(cards *goquery.Selection, read func(*goquery.Selection) (models.Product, error)) []cardResult {
	results := make([]cardResult, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		results = append(results, safeRead(i, card, read))
	})
	return results
}

func safeRead(i int, card *goquery.Selection, read func(*goquery.Selection) (models.Product, error)) (res cardResult) {
	res.index = i
	defer func() {
		if r := recover(); r != nil {
			res = cardResult{index: i, err: fmt.Errorf("panic reading card: %v", r)}
		}
	}()
	res.product, res.err = read(card)
	return res
}

// readCard fills the four product fields from one card. A missing marker
// or attribute leaves the field not available; a card that is not a single
// element is rejected.
func (e *Extractor) readCard(card *goquery.Selection) (models.Product, error) {
	if card.Length() != 1 || card.Get(0).Type != html.ElementNode {
		return models.Product{}, errNotElement
	}

	p := models.NewProduct()

	if link := card.FindMatcher(e.sel.title).First(); link.Length() > 0 {
		p.Name = models.Value(strings.TrimSpace(link.Text()))
		if href, ok := link.Attr("href"); ok {
			p.URL = models.Value(href)
		}
	}

	if price := card.FindMatcher(e.sel.price).First(); price.Length() > 0 {
		p.Price = models.Value(strings.TrimSpace(price.Text()))
	}

	if img := card.FindMatcher(e.sel.image).First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			p.ImageURL = models.Value(src)
		}
	}

	return p, nil
}
