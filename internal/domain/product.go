package domain

import "time"

// Property es un par clave/valor descriptivo de un producto.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Product struct {
	ID         string     `json:"id"`
	Heading    string     `json:"heading"`
	AltText    []string   `json:"altText"`
	OldPrice   *float64   `json:"oldPrice,omitempty"`
	Price      float64    `json:"price"`
	InStock    bool       `json:"inStock"`
	Category   string     `json:"category"`
	ImagePath  []string   `json:"imagePath"`
	Properties []Property `json:"properties"`
	IsLiked    bool       `json:"isLiked"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ScoredProduct es un producto junto a su puntaje normalizado de afinidad.
// Es efímero: se calcula por request y no se persiste.
type ScoredProduct struct {
	Product
	MatchScore float64 `json:"matchScore"`
}
