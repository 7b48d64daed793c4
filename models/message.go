package models

import "time"

// Message is a contact-form submission.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Sender    string    `json:"sender"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
