package domain

import "time"

type WishlistItem struct {
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"added_at"`
}
