// Package cart holds the cart pricing rules. A cart line is keyed by its
// configId (product id plus add-on selection) and its price is fixed when the
// line is first added.
package cart

import (
	"crypto-storefront/internal/model"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrLineNotFound = errors.New("cart line not found")

// Options is the add-on selection requested for a product.
type Options struct {
	Hosting bool `json:"hosting"`
	Domain  bool `json:"domain"`
	Inbox   bool `json:"inbox"`
}

type Item struct {
	ConfigID        string          `json:"config_id"`
	ProductID       string          `json:"product_id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	ImageURLs       []string        `json:"image_urls"`
	ModelURL        string          `json:"model_url"`
	IsCustom        bool            `json:"is_custom"`
	BasePrice       decimal.Decimal `json:"base_price"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	SelectedHosting bool            `json:"selected_hosting"`
	SelectedDomain  bool            `json:"selected_domain"`
	SelectedInbox   bool            `json:"selected_inbox"`
}

func (i *Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

// ConfigID identifies a (product, add-on combination) pair within a cart.
func ConfigID(productID string, opts Options) string {
	return fmt.Sprintf("%s-%t-%t-%t", productID, opts.Hosting, opts.Domain, opts.Inbox)
}

// Effective drops requested add-ons the product does not offer.
func Effective(p *model.Product, opts Options) Options {
	return Options{
		Hosting: opts.Hosting && p.Hosting.Enabled,
		Domain:  opts.Domain && p.CustomDomain.Enabled,
		Inbox:   opts.Inbox && p.InboxAddon.Enabled,
	}
}

// EffectivePrice is the base price plus every selected add-on the product enables.
func EffectivePrice(p *model.Product, opts Options) decimal.Decimal {
	price := p.Price
	eff := Effective(p, opts)
	if eff.Hosting {
		price = price.Add(p.Hosting.Price)
	}
	if eff.Domain {
		price = price.Add(p.CustomDomain.Price)
	}
	if eff.Inbox {
		price = price.Add(p.InboxAddon.Price)
	}
	return price
}

func (c *Cart) index(configID string) int {
	for i := range c.Items {
		if c.Items[i].ConfigID == configID {
			return i
		}
	}
	return -1
}

func (c *Cart) Find(configID string) (*Item, bool) {
	idx := c.index(configID)
	if idx < 0 {
		return nil, false
	}
	return &c.Items[idx], true
}

// Add increments the matching line or appends a new one with quantity 1.
func (c *Cart) Add(p *model.Product, opts Options) Item {
	eff := Effective(p, opts)
	configID := ConfigID(p.ID, eff)

	if idx := c.index(configID); idx >= 0 {
		c.Items[idx].Quantity++
		return c.Items[idx]
	}

	item := Item{
		ConfigID:        configID,
		ProductID:       p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		ImageURLs:       append([]string(nil), p.ImageURLs...),
		ModelURL:        p.ModelURL,
		IsCustom:        p.IsCustom,
		BasePrice:       p.Price,
		Price:           EffectivePrice(p, eff),
		Quantity:        1,
		SelectedHosting: eff.Hosting,
		SelectedDomain:  eff.Domain,
		SelectedInbox:   eff.Inbox,
	}
	c.Items = append(c.Items, item)
	return item
}

// Remove deletes the line and reports whether it existed.
func (c *Cart) Remove(configID string) bool {
	idx := c.index(configID)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// UpdateQuantity sets the line quantity. Anything below 1 removes the line.
func (c *Cart) UpdateQuantity(configID string, quantity int) error {
	idx := c.index(configID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if quantity < 1 {
		c.Remove(configID)
		return nil
	}
	c.Items[idx].Quantity = quantity
	return nil
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

func (c *Cart) Units() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}
