package dto

import (
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/model"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Toast struct {
	Level   string `json:"level"` // success | warning | error
	Message string `json:"message"`
}

// ConfirmationPrompt is returned with 428 when a destructive call lacks confirmation.
type ConfirmationPrompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"` // danger | warning
}

type ListQuery struct {
	Q    string `query:"q"`
	Page int    `query:"page"`
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
	Toast *Toast      `json:"toast,omitempty"`
}

type ProductInput struct {
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURLs    []string        `json:"image_urls"`
	Category     string          `json:"category"`
	IsCustom     bool            `json:"is_custom"`
	ModelURL     string          `json:"model_url"`
	PreviewURL   string          `json:"preview_url"`
	Hidden       bool            `json:"hidden"`
	Hosting      model.AddOn     `json:"hosting"`
	CustomDomain model.AddOn     `json:"custom_domain"`
	InboxAddon   model.AddOn     `json:"inbox_addon"`
}

type CategoryInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Hidden   bool   `json:"hidden"`
}

type ProductQuery struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Hosting   bool   `json:"hosting"`
	Domain    bool   `json:"domain"`
	Inbox     bool   `json:"inbox"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CartResponse struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Units int             `json:"units"`
	Line  *cart.Item      `json:"line,omitempty"`
	Toast *Toast          `json:"toast,omitempty"`
}

type CheckoutSummary struct {
	Gateways []model.PaymentGateway `json:"gateways"`
	Items    []cart.Item            `json:"items"`
	Total    decimal.Decimal        `json:"total"`
}

type CheckoutRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type OrderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

type ProposalInput struct {
	Description  string `json:"description"`
	ReferenceURL string `json:"reference_url"`
	WhatsApp     string `json:"whatsapp"`
	IsPrivate    bool   `json:"is_private"`
}

type AcceptProposalRequest struct {
	EstimatedCost json.Number `json:"estimated_cost"`
	ImageURLs     string      `json:"image_urls"` // comma separated
}

type UpdateInput struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Type            string `json:"type"`
	LinkedProductID string `json:"linked_product_id"`
}

type FeedbackRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type UpdateView struct {
	*model.Update
	CommentCount  int     `json:"comment_count"`
	RatingCount   int     `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
}

type UserStats struct {
	TotalAssets   int             `json:"total_assets"`
	PendingOrders int             `json:"pending_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
}

type DashboardResponse struct {
	Stats         UserStats          `json:"stats"`
	UnreadUpdates int                `json:"unread_updates"`
	Assets        []*model.UserAsset `json:"assets"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Overview struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PendingRevenue    decimal.Decimal `json:"pending_revenue"`
	ConversionRate    float64         `json:"conversion_rate"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TopCategories     []CategoryCount `json:"top_categories"`
	Users             int             `json:"users"`
	Orders            int             `json:"orders"`
}

type SessionSnapshot struct {
	User             *model.User     `json:"user"`
	Cart             []cart.Item     `json:"cart"`
	CartTotal        decimal.Decimal `json:"cart_total"`
	CartUnits        int             `json:"cart_units"`
	Settings         model.Settings  `json:"settings"`
	IsInitialLoading bool            `json:"is_initial_loading"`
}

type MediaResponse struct {
	URL   string `json:"url"`
	Toast *Toast `json:"toast,omitempty"`
}

// Envelope wraps a mutation result with its toast.
type Envelope struct {
	Data  any    `json:"data,omitempty"`
	Toast *Toast `json:"toast,omitempty"`
}
