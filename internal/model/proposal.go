package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
)

// Proposal is a user request for a custom build, priced by an admin.
type Proposal struct {
	ID            string              `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID        string              `gorm:"size:64;index;not null" json:"user_id"`
	UserEmail     string              `gorm:"size:191" json:"user_email"`
	UserName      string              `gorm:"size:128" json:"user_name"`
	Description   string              `gorm:"type:text;not null" json:"description"`
	ReferenceURL  string              `gorm:"size:512" json:"reference_url"`
	WhatsApp      string              `gorm:"size:64" json:"whatsapp"`
	IsPrivate     bool                `json:"is_private"`
	Status        ProposalStatus      `gorm:"size:16;index;not null" json:"status"`
	EstimatedCost decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"estimated_cost"`
	ImageURLs     []string            `gorm:"serializer:json" json:"image_urls"`
	CreatedAt     time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (p *Proposal) Tier() string {
	if p.IsPrivate {
		return "Private"
	}
	return "Public"
}
