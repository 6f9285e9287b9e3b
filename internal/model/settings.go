package model

import "time"

const SettingsID = "global"

type HeroSettings struct {
	Headline       string `json:"headline"`
	Description    string `json:"description"`
	ButtonText     string `json:"button_text"`
	BackgroundURL  string `json:"background_url"`
	BackgroundType string `json:"background_type"` // image | video
	ImageURL       string `json:"image_url,omitempty"`
	VideoURL       string `json:"video_url,omitempty"`
}

// PaymentGateway is a wallet offered at checkout.
type PaymentGateway struct {
	Cryptocurrency string `json:"cryptocurrency"`
	WalletAddress  string `json:"wallet_address"`
	QRCodeURL      string `json:"qr_code_url"`
}

type TelegramSettings struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

func (t TelegramSettings) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Settings is the singleton settings/global document.
type Settings struct {
	ID             string           `gorm:"primaryKey;size:16;not null" json:"-"`
	AppName        string           `gorm:"size:128" json:"app_name"`
	SEODescription string           `gorm:"type:text" json:"seo_description"`
	PrimaryColor   string           `gorm:"size:16" json:"primary_color"`
	Hero           HeroSettings     `gorm:"serializer:json" json:"hero"`
	Gateways       []PaymentGateway `gorm:"serializer:json" json:"gateways"`
	Payment        *PaymentGateway  `gorm:"serializer:json" json:"payment,omitempty"`
	Telegram       TelegramSettings `gorm:"serializer:json" json:"telegram"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

var DefaultGateway = PaymentGateway{
	Cryptocurrency: "Ethereum (ETH)",
	WalletAddress:  "0x0000000000000000000000000000000000000000",
	QRCodeURL:      "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=0x0000000000000000000000000000000000000000",
}

func DefaultSettings() Settings {
	return Settings{
		ID:             SettingsID,
		AppName:        "TECHMANSHIP",
		SEODescription: "Premium Web Scripts, Software Automation, HTML Templates, and Tech Tutorials.",
		PrimaryColor:   "#ffffff",
		Hero: HeroSettings{
			Headline:       "The Ultimate Tech Repository",
			Description:    "Acquire production-ready scripts, specialized software, and master-level tutorials for your digital infrastructure.",
			ButtonText:     "Browse Templates",
			BackgroundURL:  "https://images.unsplash.com/photo-1614850523296-d8c1af93d400?auto=format&fit=crop&q=80",
			BackgroundType: "image",
			ImageURL:       "https://images.unsplash.com/photo-1555066931-4365d14bab8c?auto=format&fit=crop&q=80",
		},
		Gateways: []PaymentGateway{DefaultGateway},
	}
}

// Normalize fills in gateways from the legacy single payment field when a
// stored document predates the gateway list.
func (s *Settings) Normalize() {
	s.ID = SettingsID
	if s.Gateways == nil {
		if s.Payment != nil {
			s.Gateways = []PaymentGateway{*s.Payment}
		} else {
			s.Gateways = []PaymentGateway{DefaultGateway}
		}
	}
}

// Public strips credentials before settings leave the admin surface.
func (s Settings) Public() Settings {
	s.Telegram = TelegramSettings{}
	gateways := make([]PaymentGateway, len(s.Gateways))
	copy(gateways, s.Gateways)
	s.Gateways = gateways
	return s
}

func (s *Settings) Clone() Settings {
	c := *s
	c.Gateways = append([]PaymentGateway(nil), s.Gateways...)
	if s.Payment != nil {
		p := *s.Payment
		c.Payment = &p
	}
	return c
}
