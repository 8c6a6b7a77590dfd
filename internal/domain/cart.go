package domain

import "time"

type CartItem struct {
	ProductID string  `json:"id"`
	Heading   string  `json:"heading"`
	Quantity  int     `json:"quantity"`
	ImagePath string  `json:"imagePath"`
	Price     float64 `json:"price"`
	InStock   bool    `json:"inStock"`
}

type Cart struct {
	Email     string     `json:"email"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}
