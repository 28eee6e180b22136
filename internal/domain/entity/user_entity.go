package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID           string
	Email        string
	Password     string
	FullName     string
	Bio          string
	BirthDate    *time.Time
	PhotoURL     string
	AvatarURL    string
	RegisteredAt time.Time
	UpdatedAt    time.Time
	Roles        []string
	Config       Configuration
}

// HasRole reports whether the user carries the given role claim.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Configuration is the per-user settings bundle. Each sub-config is
// replaced wholesale on update; the whole bundle lives as flattened
// columns on the users row.
type Configuration struct {
	Appearance    Appearance
	Locale        Locale
	Notifications Notifications
	Privacy       Privacy
	Accessibility Accessibility
	Security      Security
}

type Appearance struct {
	Theme          string `json:"theme"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	FontSize       int    `json:"fontSize"`
	ContrastMode   string `json:"contrastMode"`
}

type Locale struct {
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"dateFormat"`
	Currency   string `json:"currency"`
}

type Notifications struct {
	Email      bool `json:"email"`
	Products   bool `json:"products"`
	Categories bool `json:"categories"`
	Promotions bool `json:"promotions"`
}

type Privacy struct {
	PublicProfile bool `json:"publicProfile"`
	ShowEmail     bool `json:"showEmail"`
	ShowBirthDate bool `json:"showBirthDate"`
}

type Accessibility struct {
	ReduceAnimations   bool `json:"reduceAnimations"`
	ScreenReader       bool `json:"screenReader"`
	KeyboardNavigation bool `json:"keyboardNavigation"`
}

type Security struct {
	MultiSession       bool       `json:"multiSession"`
	TwoFactor          bool       `json:"twoFactor"`
	LastPasswordChange *time.Time `json:"lastPasswordChange,omitempty"`
}

// DefaultConfiguration is the settings bundle assigned at registration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Appearance: Appearance{
			Theme:          "light",
			PrimaryColor:   "#3b82f6",
			SecondaryColor: "#8b5cf6",
			FontFamily:     "system",
			FontSize:       16,
			ContrastMode:   "normal",
		},
		Locale: Locale{
			Language:   "es",
			Timezone:   "America/Lima",
			DateFormat: "DD/MM/YYYY",
			Currency:   "PEN",
		},
		Notifications: Notifications{
			Email:      true,
			Products:   true,
			Categories: true,
			Promotions: false,
		},
		Privacy:       Privacy{},
		Accessibility: Accessibility{},
		Security: Security{
			MultiSession: true,
		},
	}
}
