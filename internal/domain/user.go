package domain

import "time"

type ConnectionMethod string

const (
	ConnectionGoogle   ConnectionMethod = "google"
	ConnectionMetamask ConnectionMethod = "metamask"
	ConnectionEmail    ConnectionMethod = "email"
	ConnectionOther    ConnectionMethod = "other"
)

type User struct {
	ID               string           `json:"id"`
	WalletAddress    string           `json:"wallet_address"`
	ConnectionMethod ConnectionMethod `json:"connection_method"`
	Name             string           `json:"name,omitempty"`
	Email            string           `json:"email,omitempty"`
	ProfileImage     string           `json:"profile_image,omitempty"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	LastLoginAt      time.Time        `json:"last_login_at"`
}

// UserProfile carries the optional profile fields captured at login time.
type UserProfile struct {
	Name         string
	Email        string
	ProfileImage string
}
