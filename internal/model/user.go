package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:64;not null" json:"uid"`
	Email        string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"size:128;index" json:"display_name"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsSuspended  bool      `gorm:"not null;default:false" json:"is_suspended"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Detached marks a profile with no users row behind it, e.g. after a
	// purge. Such a profile can read but not mutate.
	Detached bool `gorm:"-" json:"-"`
}

// FallbackProfile is the profile served when an authenticated account has no
// users row yet.
func FallbackProfile(uid, email string) *User {
	return &User{
		ID:          uid,
		Email:       email,
		DisplayName: "User",
		Detached:    true,
	}
}
