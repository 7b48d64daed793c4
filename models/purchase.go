package models

import "time"

type Purchase struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingID uint    `gorm:"not null;index" json:"listing_id"`
	Listing   Listing `gorm:"foreignKey:ListingID" json:"listing"`
	// Buyer is a username for authenticated purchases, a freeform name for
	// guest purchases.
	Buyer       string    `json:"buyer"`
	Ref         string    `gorm:"uniqueIndex" json:"ref"`
	PurchasedAt time.Time `json:"purchased_at"`
}
