package model

import "time"

type Comment struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Rating struct {
	UserID string `json:"user_id"`
	Value  int    `json:"value"`
}

// Update is a news feed post. Users attach comments and ratings to it.
type Update struct {
	ID              string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Content         string    `gorm:"type:text" json:"content"`
	Type            string    `gorm:"size:32;not null" json:"type"`
	LinkedProductID string    `gorm:"size:64" json:"linked_product_id,omitempty"`
	Comments        []Comment `gorm:"serializer:json" json:"comments"`
	Ratings         []Rating  `gorm:"serializer:json" json:"ratings"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
