package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// AddOn is an optional paid extra attached to a product (hosting, domain, inbox).
type AddOn struct {
	Enabled      bool            `json:"enabled"`
	Price        decimal.Decimal `json:"price"`
	BillingCycle BillingCycle    `json:"billing_cycle"`
}

type Product struct {
	ID           string          `gorm:"primaryKey;size:64;not null" json:"id"`
	Slug         string          `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Name         string          `gorm:"size:255;index;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURLs    []string        `gorm:"serializer:json" json:"image_urls"`
	Category     string          `gorm:"size:128;index" json:"category"`
	IsCustom     bool            `json:"is_custom"`
	ModelURL     string          `gorm:"size:512" json:"model_url"`
	PreviewURL   string          `gorm:"size:512" json:"preview_url,omitempty"`
	Hidden       bool            `gorm:"index;not null;default:false" json:"hidden"`
	Hosting      AddOn           `gorm:"serializer:json" json:"hosting"`
	CustomDomain AddOn           `gorm:"serializer:json" json:"custom_domain"`
	InboxAddon   AddOn           `gorm:"serializer:json" json:"inbox_addon"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Category struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	Hidden    bool      `gorm:"index;not null;default:false" json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
