package models

import "time"

type Listing struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	// Seller holds the seller's username, not a foreign key. Referential
	// integrity is by convention only; a purchase whose seller account has
	// vanished forfeits the credit.
	Seller     string    `json:"seller"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	FileName   string    `json:"file_name"`
	Genre      string    `json:"genre"`
	Composer   string    `json:"composer"`
	Tags       string    `json:"tags"` // comma-separated
	CreatedAt  time.Time `json:"created_at"`
}
