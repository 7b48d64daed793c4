package models

import "time"

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
