package auth

import "time"

// Config drives authentication behaviour.
type Config struct {
	Secret          string
	TokenTTL        time.Duration
	RefreshTokenTTL time.Duration
}

// User is a persisted principal account. Guests never have one.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	DisplayName      string     `json:"displayName"`
	PasswordHash     string     `json:"-"`
	RewardUnlockedAt *time.Time `json:"rewardUnlockedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// RewardUnlocked reports whether the first-booking reward is available.
func (u User) RewardUnlocked() bool {
	return u.RewardUnlockedAt != nil
}

// RegisterRequest captures the registration payload.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest captures login details.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed tokens.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// UserView trims sensitive fields.
type UserView struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	RewardUnlocked bool      `json:"rewardUnlocked"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Claims are extracted from a validated JWT.
type Claims struct {
	UserID    int64
	Email     string
	TokenType string
	ExpiresAt time.Time
}
