package domain

import (
	"strconv"
	"strings"
	"time"
)

type MenuItem struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" validate:"required,max=120"`
	Description string    `json:"description" validate:"max=1000"`
	Price       float64   `json:"price" validate:"gte=0"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category" validate:"required"`
	Featured    bool      `json:"featured"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuFilter narrows storefront listings. Zero value lists everything.
type MenuFilter struct {
	Category    string
	Featured    *bool
	InStockOnly bool
	Search      string
}

func (f MenuFilter) CacheKey() string {
	featured := "any"
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return strings.Join([]string{
		"c=" + f.Category,
		"f=" + featured,
		"s=" + strconv.FormatBool(f.InStockOnly),
		"q=" + strings.ToLower(f.Search),
	}, "|")
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name" validate:"required,max=60"`
	DisplayName string `json:"display_name" validate:"required,max=120"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

type GalleryImage struct {
	ID        int       `json:"id"`
	Title     string    `json:"title" validate:"required,max=200"`
	URL       string    `json:"url" validate:"required"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name" validate:"required,max=120"`
	Role       string `json:"role" validate:"max=120"`
	Bio        string `json:"bio" validate:"max=2000"`
	ImageURL   string `json:"image_url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// Settings is the singleton restaurant settings row. ID is always 1.
type Settings struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	OpeningHours string    `json:"opening_hours"`
	DeliveryFee  float64   `json:"delivery_fee"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SettingsUpdate is a partial update: nil fields keep their stored value.
type SettingsUpdate struct {
	Name         *string  `json:"name" validate:"omitempty,max=120"`
	Address      *string  `json:"address" validate:"omitempty,max=300"`
	Phone        *string  `json:"phone" validate:"omitempty,max=40"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	OpeningHours *string  `json:"opening_hours" validate:"omitempty,max=300"`
	DeliveryFee  *float64 `json:"delivery_fee" validate:"omitempty,gte=0"`
}

func (u SettingsUpdate) Empty() bool {
	return u.Name == nil && u.Address == nil && u.Phone == nil &&
		u.Email == nil && u.OpeningHours == nil && u.DeliveryFee == nil
}
