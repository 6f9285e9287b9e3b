package cart

import (
	"crypto-storefront/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) *model.Product {
	return &model.Product{
		ID:    id,
		Slug:  id,
		Name:  "Product " + id,
		Price: decimal.NewFromInt(price),
		Hosting: model.AddOn{
			Enabled:      true,
			Price:        decimal.NewFromInt(10),
			BillingCycle: model.BillingMonthly,
		},
		CustomDomain: model.AddOn{
			Enabled:      true,
			Price:        decimal.RequireFromString("12.5"),
			BillingCycle: model.BillingYearly,
		},
	}
}

func TestConfigID(t *testing.T) {
	assert.Equal(t, "p1-true-false-false", ConfigID("p1", Options{Hosting: true}))
	assert.Equal(t, "p1-false-false-false", ConfigID("p1", Options{}))
}

func TestAdd_SameConfigIncrementsQuantity(t *testing.T) {
	c := New()
	p := product("p1", 50)

	c.Add(p, Options{Hosting: true})
	c.Add(p, Options{Hosting: true})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "60", c.Items[0].Price.String())
	assert.Equal(t, "120", c.Total().String())
}

func TestAdd_DifferentConfigCreatesDistinctLine(t *testing.T) {
	c := New()
	p := product("p1", 50)

	withHosting := c.Add(p, Options{Hosting: true})
	plain := c.Add(p, Options{})

	require.Len(t, c.Items, 2)
	assert.NotEqual(t, withHosting.ConfigID, plain.ConfigID)
	assert.Equal(t, "60", withHosting.Price.String())
	assert.Equal(t, "50", plain.Price.String())
	assert.Equal(t, "50", plain.BasePrice.String())
	assert.Equal(t, "110", c.Total().String())
}

func TestAdd_DisabledAddOnIsIgnored(t *testing.T) {
	c := New()
	p := product("p1", 50)

	line := c.Add(p, Options{Inbox: true})

	assert.False(t, line.SelectedInbox)
	assert.Equal(t, "50", line.Price.String())
	assert.Equal(t, ConfigID("p1", Options{}), line.ConfigID)
}

func TestAdd_PriceFixedAtAddTime(t *testing.T) {
	c := New()
	p := product("p1", 50)
	c.Add(p, Options{Domain: true})

	p.Price = decimal.NewFromInt(99)
	c.Add(p, Options{Domain: true})

	require.Len(t, c.Items, 1)
	assert.Equal(t, "62.5", c.Items[0].Price.String())
	assert.Equal(t, "125", c.Total().String())
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	line := c.Add(product("p1", 50), Options{})

	require.NoError(t, c.UpdateQuantity(line.ConfigID, 3))
	assert.Equal(t, 3, c.Units())
	assert.Equal(t, "150", c.Total().String())

	require.NoError(t, c.UpdateQuantity(line.ConfigID, 0))
	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())

	assert.ErrorIs(t, c.UpdateQuantity("missing", 1), ErrLineNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	a := c.Add(product("a", 5), Options{})
	c.Add(product("b", 7), Options{})

	assert.True(t, c.Remove(a.ConfigID))
	assert.False(t, c.Remove(a.ConfigID))
	_, ok := c.Find(a.ConfigID)
	assert.False(t, ok)
	assert.Equal(t, "7", c.Total().String())

	c.Clear()
	assert.True(t, c.Empty())
	assert.NotNil(t, c.Items)
}
