package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPreparing  OrderStatus = "preparing"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderFailed     OrderStatus = "failed"
	OrderRefunded   OrderStatus = "refunded"
)

var OrderStatuses = []OrderStatus{
	OrderPending, OrderPreparing, OrderProcessing, OrderCompleted, OrderFailed, OrderRefunded,
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// InFlight reports whether the order still awaits fulfilment.
func (s OrderStatus) InFlight() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderProcessing
}

type Order struct {
	ID              string          `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID          string          `gorm:"size:64;index;not null" json:"user_id"`
	UserEmail       string          `gorm:"size:191" json:"user_email"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status          OrderStatus     `gorm:"size:32;index;not null" json:"status"`
	PaymentMethod   string          `gorm:"size:32;not null" json:"payment_method"`
	Network         string          `gorm:"size:64" json:"network"`
	WalletAddress   string          `gorm:"size:191" json:"wallet_address"`
	AssetsGrantedAt *time.Time      `json:"-"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a denormalized snapshot of a cart line at checkout time.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	OrderID         string          `gorm:"size:64;index;not null" json:"-"`
	ProductID       string          `gorm:"size:64;index;not null" json:"id"`
	ConfigID        string          `gorm:"size:128;not null" json:"config_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Category        string          `gorm:"size:128" json:"category"`
	ImageURLs       []string        `gorm:"serializer:json" json:"image_urls"`
	ModelURL        string          `gorm:"size:512" json:"model_url"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	SelectedHosting bool            `json:"selected_hosting"`
	SelectedDomain  bool            `json:"selected_domain"`
	SelectedInbox   bool            `json:"selected_inbox"`
}

// UserAsset records what a user owns once an order completes. Removing the
// order log later leaves the asset in place.
type UserAsset struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"user_id"`
	ProductID string    `gorm:"primaryKey;size:64" json:"product_id"`
	Name      string    `gorm:"size:255" json:"name"`
	ModelURL  string    `gorm:"size:512" json:"model_url"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
