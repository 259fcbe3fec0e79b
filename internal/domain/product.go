package domain

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

// Product is a store item from the seeded reference dataset.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// Order records a store purchase. Status moves pending -> completed/failed
// without any payment computation.
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	ProductID     string    `json:"productId"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"date"`
}
